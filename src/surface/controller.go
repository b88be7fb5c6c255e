package surface

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/zyweven/daily-stock-analysis-sub001/src/hover"
	"github.com/zyweven/daily-stock-analysis-sub001/src/logging"
	"github.com/zyweven/daily-stock-analysis-sub001/src/render"
	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

// Format is an output encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" in any case; anything else is PNG.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(SVG)) {
		return SVG
	}
	return PNG
}

// Adapter is the host capability the controller needs: the container's width and its pixel ratio.
type Adapter interface {
	ContainerWidth() float64
	PixelRatio() float64
}

// Controller is one chart instance. It is not safe for concurrent use; the owning UI drives it.
type Controller struct {
	View   render.View
	Theme  render.Theme
	Sizing Sizing

	width, height float64
	ratio         float64

	series   *series.Series
	overlays types.OverlayValues
	title    string
	state    *render.Placeholder

	tracker hover.Tracker
	scene   *render.Scene
	outcome render.Outcome

	// OnInvalidate fires after every re-plan so the host can repaint.
	OnInvalidate func()
}

// NewController returns a controller with no data; it paints the empty state until SetData.
func NewController(view render.View, theme render.Theme, sizing Sizing) *Controller {
	c := &Controller{View: view, Theme: theme, Sizing: sizing, ratio: 1, outcome: render.Empty}
	c.width, c.height = sizing.Logical(0)
	return c
}

// Mount takes the initial size from the adapter.
func (c *Controller) Mount(a Adapter) {
	c.Resize(a.ContainerWidth(), a.PixelRatio())
}

// Resize re-derives the logical size from the container width and reports whether anything changed.
// A change triggers a full re-plan.
func (c *Controller) Resize(containerWidth, ratio float64) bool {
	w, h := c.Sizing.Logical(containerWidth)
	ratio = normRatio(ratio)
	if w == c.width && h == c.height && ratio == c.ratio {
		return false
	}
	c.width, c.height, c.ratio = w, h, ratio
	logging.Debugf("[surface] %s resized to %.0fx%.0f @%.2fx (%dx%d physical)", c.View.Name, w, h, ratio, Physical(w, ratio), Physical(h, ratio))
	c.invalidate(true)
	return true
}

// SetData replaces the series and overlays. A nil series shows the empty state.
func (c *Controller) SetData(s *series.Series, ov types.OverlayValues, title string) {
	c.series, c.overlays, c.title = s, ov, title
	c.state = nil
	c.invalidate(true)
}

// SetLoading shows the loading state until the next SetData.
func (c *Controller) SetLoading() { c.setState(render.PlaceholderLoading) }

// SetFailed shows the failed-to-load state until the next SetData.
func (c *Controller) SetFailed() { c.setState(render.PlaceholderFailed) }

func (c *Controller) setState(k render.Placeholder) {
	c.state = &k
	c.invalidate(true)
}

// Surface is the current logical surface.
func (c *Controller) Surface() types.SurfaceConfig {
	return types.SurfaceConfig{Width: c.width, Height: c.height, Padding: c.View.Padding}
}

// PixelRatio is the current device pixel ratio.
func (c *Controller) PixelRatio() float64 { return c.ratio }

// PhysicalSize is the pixel buffer size.
func (c *Controller) PhysicalSize() (int, int) {
	return Physical(c.width, c.ratio), Physical(c.height, c.ratio)
}

// Outcome of the latest plan.
func (c *Controller) Outcome() render.Outcome { return c.outcome }

// Scene of the latest plan; nil unless Outcome is Rendered.
func (c *Controller) Scene() *render.Scene { return c.scene }

// Placeholder reports the presentational state in effect, if any.
func (c *Controller) Placeholder() (render.Placeholder, bool) {
	if c.state != nil {
		return *c.state, true
	}
	if c.outcome == render.Empty {
		return render.PlaceholderEmpty, true
	}
	return 0, false
}

// Series is the data last given to SetData.
func (c *Controller) Series() *series.Series { return c.series }

// Hover returns the sample under the pointer, or nil.
func (c *Controller) Hover() *hover.State { return c.tracker.Current() }

// PointerMove takes a position in logical surface pixels. It re-plans only when the hovered sample changes.
func (c *Controller) PointerMove(x, y float64) bool {
	if !c.View.Crosshair || c.scene == nil || c.state != nil {
		return false
	}
	if !c.tracker.Move(x, y) {
		return false
	}
	c.invalidate(false)
	return true
}

// PointerMovePhysical takes a device-pixel position relative to the window and the surface's offset.
func (c *Controller) PointerMovePhysical(px, py, offsetX, offsetY float64) bool {
	return c.PointerMove((px-offsetX)/c.ratio, (py-offsetY)/c.ratio)
}

// PointerLeave clears the hover.
func (c *Controller) PointerLeave() bool {
	if !c.tracker.Leave() {
		return false
	}
	c.invalidate(false)
	return true
}

func (c *Controller) invalidate(rebind bool) {
	defer logging.TimeTrack(time.Now(), "plan "+c.View.Name)
	f := render.Frame{
		Series:   c.series,
		Overlays: c.overlays,
		Surface:  c.Surface(),
		View:     c.View,
		Theme:    c.Theme,
		Title:    c.title,
	}
	if !rebind {
		f.Hover = c.tracker.Current()
	}
	c.scene, c.outcome = render.Plan(f)
	if rebind {
		if c.scene != nil {
			c.tracker.Bind(c.scene.Mapping, c.series)
		} else {
			c.tracker.Bind(nil, nil)
		}
	}
	if c.OnInvalidate != nil {
		c.OnInvalidate()
	}
}

func (c *Controller) commands() []render.Command {
	if k, ok := c.Placeholder(); ok {
		return render.PlanPlaceholder(k, c.Surface(), c.Theme)
	}
	if c.scene == nil {
		return nil
	}
	return c.scene.Commands
}

// Paint draws the current state onto r. The caller sizes r; scale maps logical to r's pixels.
func (c *Controller) Paint(r chart.Renderer, scale float64) error {
	font, err := render.DefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	render.Paint(r, c.commands(), scale, font)
	return nil
}

// Encode writes the current state in the given format. PNG is rendered at the physical size, SVG at
// the logical size. An invalid surface writes nothing and reports SkippedInvalidSurface.
func (c *Controller) Encode(w io.Writer, format Format) (render.Outcome, error) {
	if c.outcome == render.SkippedInvalidSurface || c.width <= 0 || c.height <= 0 {
		return render.SkippedInvalidSurface, nil
	}
	var (
		r     chart.Renderer
		err   error
		scale = 1.0
	)
	if format == SVG {
		r, err = chart.SVG(int(c.width), int(c.height))
	} else {
		pw, ph := c.PhysicalSize()
		r, err = chart.PNG(pw, ph)
		scale = c.ratio
	}
	if err != nil {
		return c.outcome, fmt.Errorf("create %s renderer: %w", format, err)
	}
	if err := c.Paint(r, scale); err != nil {
		return c.outcome, err
	}
	if err := r.Save(w); err != nil {
		return c.outcome, fmt.Errorf("encode %s: %w", format, err)
	}
	return c.outcome, nil
}

// Image renders the current state to a bitmap at the physical size. It returns nil for an invalid surface.
func (c *Controller) Image() (image.Image, render.Outcome, error) {
	var buf bytes.Buffer
	out, err := c.Encode(&buf, PNG)
	if err != nil || out == render.SkippedInvalidSurface {
		return nil, out, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, out, fmt.Errorf("decode png: %w", err)
	}
	return img, out, nil
}
