package main

import (
	"testing"

	"github.com/zyweven/daily-stock-analysis-sub001/src/config"
)

func TestFlagsOverrideConfig(t *testing.T) {
	cf, err := parseFlags([]string{"-file", "bars.csv", "-width", "640", "-dpr", "2", "-sl", "7.5", "-view", "compact"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := &config.Config{}
	cfg.Source.Kind = "yahoo"
	cfg.Chart.Width = 800
	if err := cf.apply(cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Source.Kind != "file" || cfg.Source.Path != "bars.csv" {
		t.Fatalf("source = %+v", cfg.Source)
	}
	if cfg.Chart.Width != 640 || cfg.Chart.PixelRatio != 2 || cfg.Chart.View != "compact" {
		t.Fatalf("chart = %+v", cfg.Chart)
	}
	if cfg.Overlays.StopLoss == nil || *cfg.Overlays.StopLoss != 7.5 {
		t.Fatalf("stop loss not applied")
	}
	if cfg.Overlays.TakeProfit != nil {
		t.Fatalf("unset flag must not touch take profit")
	}
}

func TestUnsetFlagsLeaveConfig(t *testing.T) {
	cf, err := parseFlags([]string{"-render", "out.png"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cf.render != "out.png" || len(cf.set) != 0 {
		t.Fatalf("flags = %+v", cf)
	}
	cfg := &config.Config{}
	cfg.Source.Code = "AAPL"
	if err := cf.apply(cfg); err != nil || cfg.Source.Code != "AAPL" {
		t.Fatalf("config changed: %+v %v", cfg.Source, err)
	}
}

func TestCodeFlagSelectsFetcher(t *testing.T) {
	cf, _ := parseFlags([]string{"-code", "600519", "-days", "30"})
	cfg := &config.Config{}
	cfg.Source.Kind = "file"
	if err := cf.apply(cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Source.Kind != "yahoo" || cfg.Source.Code != "600519" || cfg.Source.Days != 30 {
		t.Fatalf("source = %+v", cfg.Source)
	}
}
