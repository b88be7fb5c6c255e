// Command pricechart shows a daily close-price chart with analysis, stop-loss and take-profit
// overlays, either in a desktop window or rendered headlessly to a PNG/SVG file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/zyweven/daily-stock-analysis-sub001/src/config"
	"github.com/zyweven/daily-stock-analysis-sub001/src/logging"
)

type cliFlags struct {
	configPath string
	render     string
	set        map[string]string
}

func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("pricechart", flag.ContinueOnError)
	cf := &cliFlags{set: map[string]string{}}
	fs.StringVar(&cf.configPath, "config", "pricechart.yaml", "Path to YAML config (optional)")
	fs.StringVar(&cf.render, "render", "", "Render headlessly to this file (.png or .svg) and exit")
	fs.String("file", "", "Load bars from a JSON/JSONL/CSV file instead of fetching")
	fs.String("code", "", "Security code to fetch")
	fs.Int("days", 0, "Number of daily bars")
	fs.String("cache", "", "SQLite cache path for fetched bars")
	fs.String("view", "", "compact or expanded")
	fs.String("theme", "", "dark or light")
	fs.Float64("width", 0, "Container width in logical pixels")
	fs.Float64("dpr", 0, "Device pixel ratio for PNG output")
	fs.String("format", "", "png or svg")
	fs.String("title", "", "Chart title")
	fs.String("analysis", "", "Analysis date (YYYY-MM-DD)")
	fs.Float64("sl", 0, "Stop-loss level")
	fs.Float64("tp", 0, "Take-profit level")
	fs.String("log", "", "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name != "config" && f.Name != "render" {
			cf.set[f.Name] = f.Value.String()
		}
	})
	return cf, nil
}

// apply copies explicitly given flags over cfg.
func (cf *cliFlags) apply(cfg *config.Config) error {
	num := func(name string) (float64, error) {
		v, err := strconv.ParseFloat(cf.set[name], 64)
		if err != nil {
			return 0, fmt.Errorf("-%s: %w", name, err)
		}
		return v, nil
	}
	for name, v := range cf.set {
		switch name {
		case "file":
			cfg.Source.Kind, cfg.Source.Path = "file", v
		case "code":
			cfg.Source.Code = v
			if cf.set["file"] == "" {
				cfg.Source.Kind = "yahoo"
			}
		case "days":
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("-days: %w", err)
			}
			cfg.Source.Days = n
		case "cache":
			cfg.Source.CachePath = v
		case "view":
			cfg.Chart.View = v
		case "theme":
			cfg.Chart.Theme = v
		case "format":
			cfg.Chart.Format = v
		case "title":
			cfg.Chart.Title = v
		case "analysis":
			cfg.Overlays.AnalysisDate = v
		case "log":
			cfg.LogLevel = v
		case "width", "dpr", "sl", "tp":
			f, err := num(name)
			if err != nil {
				return err
			}
			switch name {
			case "width":
				cfg.Chart.Width = f
			case "dpr":
				cfg.Chart.PixelRatio = f
			case "sl":
				cfg.Overlays.StopLoss = &f
			case "tp":
				cfg.Overlays.TakeProfit = &f
			}
		}
	}
	return nil
}

func run(args []string) error {
	cf, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cf.configPath)
	if err != nil {
		return err
	}
	if err := cf.apply(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logging.SetLogLevel(cfg.LogLevel)
	defer logging.Sync()

	if cf.render != "" {
		return RunRenderMode(context.Background(), cfg, cf.render)
	}
	return runViewer(cfg)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if err != flag.ErrHelp {
			logging.Errorf("%v", err)
		}
		os.Exit(1)
	}
}
