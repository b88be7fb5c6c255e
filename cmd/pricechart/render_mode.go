package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zyweven/daily-stock-analysis-sub001/src/config"
	"github.com/zyweven/daily-stock-analysis-sub001/src/logging"
	"github.com/zyweven/daily-stock-analysis-sub001/src/render"
	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
	"github.com/zyweven/daily-stock-analysis-sub001/src/source"
	"github.com/zyweven/daily-stock-analysis-sub001/src/surface"
)

// RunRenderMode loads the configured series and writes one chart to outPath without opening a window.
// A failed load still writes the "failed to load" surface and returns the load error.
func RunRenderMode(ctx context.Context, cfg *config.Config, outPath string) error {
	defer logging.TimeTrack(time.Now(), "render "+outPath)
	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
	}
	format := surface.ParseFormat(cfg.Chart.Format)
	if strings.EqualFold(filepath.Ext(outPath), ".svg") {
		format = surface.SVG
	}

	ctrl := newController(render.ViewByName(cfg.Chart.View), cfg)
	ctrl.Resize(cfg.Chart.Width, cfg.Chart.PixelRatio)

	loadErr := loadInto(ctx, ctrl, cfg)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()
	out, err := ctrl.Encode(f, format)
	if err != nil && format == surface.PNG {
		logging.Warnf("[pricechart] chart renderer failed, writing status image: %v", err)
		if _, serr := f.Seek(0, 0); serr == nil {
			_ = f.Truncate(0)
			w, h := ctrl.PhysicalSize()
			err = png.Encode(f, statusImage(w, h, ctrl.Theme, err.Error()))
		}
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	if out == render.SkippedInvalidSurface {
		return fmt.Errorf("chart %.0fx%.0f leaves no plot area", ctrl.Surface().Width, ctrl.Surface().Height)
	}
	logging.Infof("[pricechart] wrote %s (%s, %s)", outPath, format, out)
	return loadErr
}

// loadInto fetches data into ctrl. Empty data shows the empty state and is not an error.
func loadInto(ctx context.Context, ctrl *surface.Controller, cfg *config.Config) error {
	f, closeFn, err := openFetcher(cfg)
	if err != nil {
		ctrl.SetFailed()
		return err
	}
	defer closeFn()
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	s, err := loadSeries(ctx, f, cfg)
	switch {
	case isEmpty(err):
		logging.Warnf("[pricechart] %s: %v", cfg.Source.Code, err)
		ctrl.SetData(nil, overlaysFrom(cfg), "")
		return nil
	case err != nil:
		logging.Errorf("[pricechart] load %s: %v", cfg.Source.Code, err)
		ctrl.SetFailed()
		return err
	}
	ctrl.SetData(s, overlaysFrom(cfg), chartTitle(cfg))
	return nil
}

// isEmpty reports load errors that mean "nothing to plot" rather than a failure.
func isEmpty(err error) bool {
	return errors.Is(err, series.ErrEmptySeries) || errors.Is(err, source.ErrNoData)
}

func chartTitle(cfg *config.Config) string {
	if cfg.Chart.Title != "" {
		return cfg.Chart.Title
	}
	return cfg.Source.Code
}
