package main

import (
	"context"
	"fmt"

	"github.com/zyweven/daily-stock-analysis-sub001/src/config"
	"github.com/zyweven/daily-stock-analysis-sub001/src/logging"
	"github.com/zyweven/daily-stock-analysis-sub001/src/render"
	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
	"github.com/zyweven/daily-stock-analysis-sub001/src/source"
	"github.com/zyweven/daily-stock-analysis-sub001/src/surface"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

// openFetcher builds the configured source, wrapped in the SQLite cache when a cache path is set.
// The returned close func is never nil.
func openFetcher(cfg *config.Config) (source.Fetcher, func() error, error) {
	var f source.Fetcher
	switch cfg.Source.Kind {
	case "file":
		f = &source.FileSource{Path: cfg.Source.Path}
	default:
		f = source.NewYahooFetcher(cfg.Source.BaseURL, cfg.Source.Proxy)
	}
	if cfg.Source.CachePath == "" || cfg.Source.Kind == "file" {
		return f, func() error { return nil }, nil
	}
	c, err := source.OpenCache(cfg.Source.CachePath, f, cfg.Source.CacheTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	return c, c.Close, nil
}

// loadSeries fetches and normalizes the configured code.
func loadSeries(ctx context.Context, f source.Fetcher, cfg *config.Config) (*series.Series, error) {
	bars, err := f.Fetch(ctx, cfg.Source.Code, cfg.Source.Days)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	s, err := series.Normalize(types.Points(bars))
	if err != nil {
		return nil, err
	}
	logging.Infof("[pricechart] %s: %d samples from %s, last close %s", cfg.Source.Code, s.Len(), f.Name(), render.FormatPrice(s.Last().Close))
	return s, nil
}

func overlaysFrom(cfg *config.Config) types.OverlayValues {
	return types.OverlayValues{
		AnalysisDate: cfg.Overlays.AnalysisDate,
		StopLoss:     cfg.Overlays.StopLoss,
		TakeProfit:   cfg.Overlays.TakeProfit,
	}
}

func themeFrom(cfg *config.Config) render.Theme {
	if cfg.Chart.Theme == "light" {
		return render.LightTheme()
	}
	return render.DarkTheme()
}

func newController(view render.View, cfg *config.Config) *surface.Controller {
	sz := surface.ExpandedSizing
	if view.Name == render.Compact.Name {
		sz = surface.CompactSizing
	}
	return surface.NewController(view, themeFrom(cfg), sz)
}
