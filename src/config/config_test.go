package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "pricechart.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "yahoo", cfg.Source.Kind)
	assert.Equal(t, 60, cfg.Source.Days)
	assert.Equal(t, 6*time.Hour, cfg.Source.CacheTTL)
	assert.Equal(t, "expanded", cfg.Chart.View)
	assert.Equal(t, 800.0, cfg.Chart.Width)
	assert.Equal(t, 1.0, cfg.Chart.PixelRatio)
	assert.Nil(t, cfg.Overlays.StopLoss)
	assert.EqualError(t, cfg.Validate(), "source.code is required for yahoo source")
}

func TestLoadYAML(t *testing.T) {
	chdir(t, t.TempDir())
	p := writeConfig(t, t.TempDir(), `
log_level: debug
source:
  path: data/600519.csv
  days: 30
  cache_ttl: 90m
chart:
  view: compact
  pixel_ratio: 2
  format: svg
overlays:
  analysis_date: "2024-01-02"
  stop_loss: 7
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "file", cfg.Source.Kind, "a path implies the file source")
	assert.Equal(t, 30, cfg.Source.Days)
	assert.Equal(t, 90*time.Minute, cfg.Source.CacheTTL)
	assert.Equal(t, "compact", cfg.Chart.View)
	assert.Equal(t, 2.0, cfg.Chart.PixelRatio)
	require.NotNil(t, cfg.Overlays.StopLoss)
	assert.Equal(t, 7.0, *cfg.Overlays.StopLoss)
	assert.Nil(t, cfg.Overlays.TakeProfit)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverridesYAML(t *testing.T) {
	chdir(t, t.TempDir())
	p := writeConfig(t, t.TempDir(), "source:\n  code: AAPL\nchart:\n  width: 500\n")
	t.Setenv("PRICECHART_CODE", "600519")
	t.Setenv("PRICECHART_WIDTH", "640")
	t.Setenv("PRICECHART_TAKE_PROFIT", "14.5")
	t.Setenv("PRICECHART_THEME", "light")
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "600519", cfg.Source.Code)
	assert.Equal(t, 640.0, cfg.Chart.Width)
	require.NotNil(t, cfg.Overlays.TakeProfit)
	assert.Equal(t, 14.5, *cfg.Overlays.TakeProfit)
	assert.Equal(t, "light", cfg.Chart.Theme)
	assert.NoError(t, cfg.Validate())
}

func TestEnvParseErrors(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PRICECHART_DAYS", "many")
	_, err := Load("")
	assert.ErrorContains(t, err, "PRICECHART_DAYS")
}

func TestDotenvNextToConfig(t *testing.T) {
	chdir(t, t.TempDir())
	dir := t.TempDir()
	p := writeConfig(t, dir, "source:\n  kind: yahoo\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PRICECHART_CODE=HSI\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PRICECHART_CODE") })
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "HSI", cfg.Source.Code)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.Source.Kind = "yahoo"
		c.Source.Code = "AAPL"
		c.applyDefaults()
		return c
	}
	require.NoError(t, base().Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"kind", func(c *Config) { c.Source.Kind = "ftp" }, "source.kind"},
		{"file path", func(c *Config) { c.Source.Kind = "file" }, "source.path"},
		{"view", func(c *Config) { c.Chart.View = "huge" }, "chart.view"},
		{"theme", func(c *Config) { c.Chart.Theme = "neon" }, "chart.theme"},
		{"width", func(c *Config) { c.Chart.Width = -1 }, "chart.width"},
		{"ratio", func(c *Config) { c.Chart.PixelRatio = -2 }, "chart.pixel_ratio"},
		{"format", func(c *Config) { c.Chart.Format = "gif" }, "chart.format"},
		{"days", func(c *Config) { c.Source.Days = -1 }, "source.days"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(c)
			assert.ErrorContains(t, c.Validate(), tc.want)
		})
	}
}

// chdir changes the working directory for the duration of the test (testing.T.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
