// Package config loads the viewer's settings: YAML file, then .env, then PRICECHART_* environment
// overrides, then defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "PRICECHART_"

type Config struct {
	LogLevel string `yaml:"log_level"`
	Source   struct {
		Kind      string        `yaml:"kind"` // file | yahoo
		Path      string        `yaml:"path"`
		BaseURL   string        `yaml:"base_url"`
		Proxy     string        `yaml:"proxy"`
		CachePath string        `yaml:"cache_path"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
		Code      string        `yaml:"code"`
		Days      int           `yaml:"days"`
	} `yaml:"source"`
	Chart struct {
		View       string  `yaml:"view"` // compact | expanded
		Theme      string  `yaml:"theme"`
		Width      float64 `yaml:"width"`
		PixelRatio float64 `yaml:"pixel_ratio"`
		Format     string  `yaml:"format"` // png | svg
		Title      string  `yaml:"title"`
	} `yaml:"chart"`
	Overlays struct {
		AnalysisDate string   `yaml:"analysis_date"`
		StopLoss     *float64 `yaml:"stop_loss"`
		TakeProfit   *float64 `yaml:"take_profit"`
	} `yaml:"overlays"`
}

// Load reads path (a missing file is fine), merges .env files from the working directory and the
// config's directory, applies environment overrides and fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if files := dotenvFiles(path); len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func dotenvFiles(path string) []string {
	var out []string
	seen := map[string]bool{}
	dirs := []string{"."}
	if path != "" {
		dirs = append(dirs, filepath.Dir(path))
	}
	for _, d := range dirs {
		p, err := filepath.Abs(filepath.Join(d, ".env"))
		if err != nil || seen[p] {
			continue
		}
		seen[p] = true
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func env(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"LOG_LEVEL":     &c.LogLevel,
		"SOURCE":        &c.Source.Kind,
		"PATH":          &c.Source.Path,
		"BASE_URL":      &c.Source.BaseURL,
		"CACHE_PATH":    &c.Source.CachePath,
		"CODE":          &c.Source.Code,
		"VIEW":          &c.Chart.View,
		"THEME":         &c.Chart.Theme,
		"FORMAT":        &c.Chart.Format,
		"TITLE":         &c.Chart.Title,
		"ANALYSIS_DATE": &c.Overlays.AnalysisDate,
	}
	for k, dst := range strs {
		if v, ok := env(k); ok {
			*dst = v
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Source.Proxy = v
	}
	if v, ok := env("PROXY"); ok {
		c.Source.Proxy = v
	}
	if v, ok := env("DAYS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sDAYS: %w", envPrefix, err)
		}
		c.Source.Days = n
	}
	if v, ok := env("CACHE_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sCACHE_TTL: %w", envPrefix, err)
		}
		c.Source.CacheTTL = d
	}
	floats := map[string]*float64{
		"WIDTH":       &c.Chart.Width,
		"PIXEL_RATIO": &c.Chart.PixelRatio,
	}
	for k, dst := range floats {
		if v, ok := env(k); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, k, err)
			}
			*dst = f
		}
	}
	for k, dst := range map[string]**float64{"STOP_LOSS": &c.Overlays.StopLoss, "TAKE_PROFIT": &c.Overlays.TakeProfit} {
		if v, ok := env(k); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, k, err)
			}
			*dst = &f
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Source.Kind == "" {
		c.Source.Kind = "yahoo"
		if c.Source.Path != "" {
			c.Source.Kind = "file"
		}
	}
	if c.Source.CacheTTL == 0 {
		c.Source.CacheTTL = 6 * time.Hour
	}
	if c.Source.Days == 0 {
		c.Source.Days = 60
	}
	if c.Chart.View == "" {
		c.Chart.View = "expanded"
	}
	if c.Chart.Theme == "" {
		c.Chart.Theme = "dark"
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = 800
	}
	if c.Chart.PixelRatio == 0 {
		c.Chart.PixelRatio = 1
	}
	if c.Chart.Format == "" {
		c.Chart.Format = "png"
	}
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case "file":
		if c.Source.Path == "" {
			return fmt.Errorf("source.path is required for file source")
		}
	case "yahoo":
		if c.Source.Code == "" {
			return fmt.Errorf("source.code is required for yahoo source")
		}
	default:
		return fmt.Errorf("source.kind must be file or yahoo, got %q", c.Source.Kind)
	}
	if c.Source.Days < 0 {
		return fmt.Errorf("source.days must not be negative")
	}
	if c.Chart.View != "compact" && c.Chart.View != "expanded" {
		return fmt.Errorf("chart.view must be compact or expanded, got %q", c.Chart.View)
	}
	if c.Chart.Theme != "dark" && c.Chart.Theme != "light" {
		return fmt.Errorf("chart.theme must be dark or light, got %q", c.Chart.Theme)
	}
	if c.Chart.Width <= 0 {
		return fmt.Errorf("chart.width must be positive")
	}
	if c.Chart.PixelRatio <= 0 {
		return fmt.Errorf("chart.pixel_ratio must be positive")
	}
	if f := strings.ToLower(c.Chart.Format); f != "png" && f != "svg" {
		return fmt.Errorf("chart.format must be png or svg, got %q", c.Chart.Format)
	}
	return nil
}
