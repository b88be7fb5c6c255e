package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/zyweven/daily-stock-analysis-sub001/cmd/pricechart/uihelpers"
	"github.com/zyweven/daily-stock-analysis-sub001/src/config"
	"github.com/zyweven/daily-stock-analysis-sub001/src/logging"
	"github.com/zyweven/daily-stock-analysis-sub001/src/render"
	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
	"github.com/zyweven/daily-stock-analysis-sub001/src/source"
)

// fixedVariantTheme pins the default fyne theme to the chart theme's variant.
type fixedVariantTheme struct{ variant fyne.ThemeVariant }

func (t *fixedVariantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, t.variant)
}
func (t *fixedVariantTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}
func (t *fixedVariantTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (t *fixedVariantTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

type uiState struct {
	app     fyne.App
	window  fyne.Window
	cfg     *config.Config
	fetcher source.Fetcher

	compact  *chartWidget
	expanded *chartWidget

	codeSelect *widget.SelectEntry
	badge      *widget.Label
	status     *widget.Label

	cancel context.CancelFunc
}

func runViewer(cfg *config.Config) error {
	f, closeFn, err := openFetcher(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	a := app.NewWithID("com.pricechart.viewer")
	variant := theme.VariantDark
	if cfg.Chart.Theme == "light" {
		variant = theme.VariantLight
	}
	a.Settings().SetTheme(&fixedVariantTheme{variant: variant})
	w := a.NewWindow(uihelpers.WindowTitle(cfg.Source.Code, cfg.Chart.Title))
	w.Resize(fyne.NewSize(960, 640))

	state := &uiState{
		app:      a,
		window:   w,
		cfg:      cfg,
		fetcher:  f,
		compact:  newChartWidget(newController(render.Compact, cfg)),
		expanded: newChartWidget(newController(render.Expanded, cfg)),
		badge:    widget.NewLabel(""),
		status:   widget.NewLabel(""),
	}
	state.codeSelect = widget.NewSelectEntry(recentCodes(state))
	state.codeSelect.SetText(cfg.Source.Code)
	state.codeSelect.SetPlaceHolder("code, e.g. 600519")
	state.codeSelect.OnSubmitted = func(string) { reload(state) }
	if cfg.Source.Kind == "file" {
		state.codeSelect.Disable()
		state.codeSelect.SetText(uihelpers.TruncateMiddle(cfg.Source.Path, 40))
	}

	daysSel := widget.NewSelect([]string{"20", "60", "120", "250"}, func(v string) {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n != state.cfg.Source.Days {
			state.cfg.Source.Days = n
			reload(state)
		}
	})
	daysSel.Selected = fmt.Sprintf("%d", cfg.Source.Days)

	expandBtn := widget.NewButtonWithIcon("Expand", theme.ZoomInIcon(), func() { showExpanded(state) })
	reloadBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() { reload(state) })

	top := container.NewBorder(nil, nil, widget.NewLabel("Code"), container.NewHBox(widget.NewLabel("Days"), daysSel, reloadBtn, expandBtn), state.codeSelect)
	card := widget.NewCard("", "", container.NewVBox(state.badge, container.NewCenter(state.compact)))
	body := container.NewVBox(card, widget.NewSeparator(), state.expanded)
	w.SetContent(container.NewBorder(top, state.status, nil, nil, container.NewVScroll(body)))

	buildMenus(state)
	reload(state)
	w.ShowAndRun()
	if state.cancel != nil {
		state.cancel()
	}
	return nil
}

func buildMenus(state *uiState) {
	export := fyne.NewMenuItem("Export Chart…", func() { exportChartPNG(state) })
	refresh := fyne.NewMenuItem("Reload", func() { reload(state) })
	state.window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File", refresh, export)))
	canv := state.window.Canvas()
	for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { reload(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyE, Modifier: mod}, func(fyne.Shortcut) { showExpanded(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { state.window.Close() })
	}
}

// reload fetches in the background; both charts show the loading state until it finishes.
func reload(state *uiState) {
	if state.cancel != nil {
		state.cancel()
	}
	if state.cfg.Source.Kind != "file" {
		state.cfg.Source.Code = strings.TrimSpace(state.codeSelect.Text)
	}
	if state.cfg.Source.Code == "" && state.cfg.Source.Kind != "file" {
		state.status.SetText("Enter a code to load")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	state.cancel = cancel
	state.compact.ctrl.SetLoading()
	state.expanded.ctrl.SetLoading()
	state.status.SetText(fmt.Sprintf("Loading %s from %s…", state.cfg.Source.Code, state.fetcher.Name()))
	state.window.SetTitle(uihelpers.WindowTitle(state.cfg.Source.Code, state.cfg.Chart.Title))

	cfg := *state.cfg
	go func() {
		s, err := loadSeries(ctx, state.fetcher, &cfg)
		if errors.Is(err, context.Canceled) {
			return
		}
		fyne.Do(func() { applyLoad(state, &cfg, s, err) })
	}()
}

func applyLoad(state *uiState, cfg *config.Config, s *series.Series, err error) {
	ov := overlaysFrom(cfg)
	switch {
	case isEmpty(err):
		state.compact.ctrl.SetData(nil, ov, "")
		state.expanded.ctrl.SetData(nil, ov, "")
		state.badge.SetText("")
		state.status.SetText("No data for " + cfg.Source.Code)
		return
	case err != nil:
		state.compact.ctrl.SetFailed()
		state.expanded.ctrl.SetFailed()
		state.badge.SetText("")
		state.status.SetText("Load failed: " + err.Error())
		return
	}
	title := chartTitle(cfg)
	state.compact.ctrl.SetData(s, ov, title)
	state.expanded.ctrl.SetData(s, ov, title)
	state.badge.SetText(fmt.Sprintf("%s  %s", title, s.LatestChange().Label()))
	state.status.SetText(fmt.Sprintf("%d samples · %s → %s", s.Len(), s.At(0).Date, s.Last().Date))
	addRecentCode(state, cfg.Source.Code)
}

// showExpanded opens the expanded chart in a modal over the main window.
func showExpanded(state *uiState) {
	ctrl := newController(render.Expanded, state.cfg)
	if s := state.expanded.ctrl.Series(); s != nil {
		ctrl.SetData(s, overlaysFrom(state.cfg), chartTitle(state.cfg))
	} else if k, ok := state.expanded.ctrl.Placeholder(); ok && k == render.PlaceholderFailed {
		ctrl.SetFailed()
	}
	cw := newChartWidget(ctrl)
	d := dialog.NewCustom(uihelpers.WindowTitle(state.cfg.Source.Code, state.cfg.Chart.Title), "Close", cw, state.window)
	sz := state.window.Canvas().Size()
	width := uihelpers.ContainerWidth(sz.Width, 40, 240)
	_, h := ctrl.Sizing.Logical(float64(width))
	d.Resize(fyne.NewSize(width, float32(h)+80))
	d.Show()
}

func exportChartPNG(state *uiState) {
	img, out, err := state.expanded.ctrl.Image()
	if err != nil || img == nil || out != render.Rendered {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(fmt.Sprintf("%s.png", strings.NewReplacer("/", "_", "\\", "_").Replace(chartTitle(state.cfg))))
	fs.Show()
}

func recentCodes(state *uiState) []string {
	raw := state.app.Preferences().StringWithFallback("recentCodes", "")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

func addRecentCode(state *uiState, code string) {
	if state.cfg.Source.Kind == "file" {
		return
	}
	list := uihelpers.RecentList(recentCodes(state), code, 10)
	state.app.Preferences().SetString("recentCodes", strings.Join(list, "\n"))
	state.codeSelect.SetOptions(list)
	logging.Debugf("[pricechart] recent codes: %v", list)
}
