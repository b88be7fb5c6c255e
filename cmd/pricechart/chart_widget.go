package main

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/zyweven/daily-stock-analysis-sub001/cmd/pricechart/uihelpers"
	"github.com/zyweven/daily-stock-analysis-sub001/src/logging"
	"github.com/zyweven/daily-stock-analysis-sub001/src/surface"
)

// chartWidget shows one surface.Controller as a bitmap. Layout is its resize signal and the
// window canvas scale is its pixel ratio.
type chartWidget struct {
	widget.BaseWidget
	ctrl     *surface.Controller
	img      *canvas.Image
	tipBG    *canvas.Rectangle
	tip      *widget.Label
	minWidth float32
}

func newChartWidget(ctrl *surface.Controller) *chartWidget {
	c := &chartWidget{ctrl: ctrl, minWidth: 240}
	c.img = canvas.NewImageFromImage(nil)
	c.img.FillMode = canvas.ImageFillStretch
	c.img.ScaleMode = canvas.ImageScaleSmooth
	c.tipBG = canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 190})
	c.tipBG.CornerRadius = 4
	c.tip = widget.NewLabel("")
	c.tip.TextStyle = fyne.TextStyle{Monospace: true}
	c.hideTip()
	ctrl.OnInvalidate = c.repaint
	c.ExtendBaseWidget(c)
	return c
}

func (c *chartWidget) CreateRenderer() fyne.WidgetRenderer {
	return &chartRenderer{c: c, objs: []fyne.CanvasObject{c.img, c.tipBG, c.tip}}
}

// pixelRatio reads the scale of the canvas the widget is on; 1 before it is shown.
func (c *chartWidget) pixelRatio() float64 {
	app := fyne.CurrentApp()
	if app == nil || app.Driver() == nil || len(app.Driver().AllWindows()) == 0 {
		return 1
	}
	if cv := app.Driver().CanvasForObject(c); cv != nil && cv.Scale() > 0 {
		return float64(cv.Scale())
	}
	return 1
}

func (c *chartWidget) repaint() {
	img, _, err := c.ctrl.Image()
	if err != nil {
		logging.Warnf("[pricechart] %s chart: %v", c.ctrl.View.Name, err)
		w, h := c.ctrl.PhysicalSize()
		img = statusImage(w, h, c.ctrl.Theme, "Chart unavailable")
	}
	c.img.Image = img
	surf := c.ctrl.Surface()
	c.img.Resize(fyne.NewSize(float32(surf.Width), float32(surf.Height)))
	c.img.Move(fyne.NewPos(0, 0))
	c.img.Refresh()
	c.placeTip()
}

func (c *chartWidget) hideTip() {
	c.tip.Hide()
	c.tipBG.Hide()
}

func (c *chartWidget) placeTip() {
	h := c.ctrl.Hover()
	if h == nil || c.ctrl.Scene() == nil {
		c.hideTip()
		return
	}
	c.tip.SetText(strings.Join(h.Lines(c.ctrl.Series()), "\n"))
	ts := c.tip.MinSize()
	surf := c.ctrl.Surface()
	x, y := uihelpers.TooltipPosition(float32(h.PixelX), float32(h.PixelY), ts.Width, ts.Height, float32(surf.Width), float32(surf.Height))
	c.tipBG.Resize(ts)
	c.tipBG.Move(fyne.NewPos(x, y))
	c.tip.Resize(ts)
	c.tip.Move(fyne.NewPos(x, y))
	c.tipBG.Show()
	c.tip.Show()
}

func (c *chartWidget) MouseIn(ev *desktop.MouseEvent) { c.MouseMoved(ev) }

func (c *chartWidget) MouseMoved(ev *desktop.MouseEvent) {
	c.ctrl.PointerMove(float64(ev.Position.X), float64(ev.Position.Y))
}

func (c *chartWidget) MouseOut() { c.ctrl.PointerLeave() }

var _ desktop.Hoverable = (*chartWidget)(nil)

type chartRenderer struct {
	c    *chartWidget
	objs []fyne.CanvasObject
}

func (r *chartRenderer) Destroy() {}

func (r *chartRenderer) Layout(size fyne.Size) {
	if !r.c.ctrl.Resize(float64(size.Width), r.c.pixelRatio()) && r.c.img.Image == nil {
		r.c.repaint()
	}
}

func (r *chartRenderer) MinSize() fyne.Size {
	surf := r.c.ctrl.Surface()
	if r.c.ctrl.Sizing.FixedWidth > 0 {
		return fyne.NewSize(float32(surf.Width), float32(surf.Height))
	}
	_, h := r.c.ctrl.Sizing.Logical(float64(r.c.minWidth))
	if surf.Height > h {
		h = surf.Height
	}
	return fyne.NewSize(r.c.minWidth, float32(h))
}

func (r *chartRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *chartRenderer) Refresh() { r.c.repaint() }
