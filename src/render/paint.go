package render

import (
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
)

var (
	fontOnce    sync.Once
	defaultFont *truetype.Font
	fontErr     error
)

// DefaultFont loads go-chart's bundled font once.
func DefaultFont() (*truetype.Font, error) {
	fontOnce.Do(func() { defaultFont, fontErr = chart.GetDefaultFont() })
	return defaultFont, fontErr
}

// Paint replays cmds onto r in order. Every coordinate, width and font size is multiplied by scale,
// which is the device pixel ratio when r is a physical-pixel buffer.
func Paint(r chart.Renderer, cmds []Command, scale float64, font *truetype.Font) {
	if scale <= 0 {
		scale = 1
	}
	// Font sizes are given in pixels; at 72 DPI a point is a pixel.
	r.SetDPI(72)
	for _, c := range cmds {
		paintOne(r, c, scale, font)
	}
}

func paintOne(r chart.Renderer, c Command, scale float64, font *truetype.Font) {
	px := func(v float64) int { return int(math.Round(v * scale)) }
	r.ResetStyle()
	switch c.Op {
	case OpRect:
		if len(c.Points) < 2 {
			return
		}
		a, b := c.Points[0], c.Points[1]
		r.SetFillColor(c.Style.Fill)
		r.MoveTo(px(a.X), px(a.Y))
		r.LineTo(px(b.X), px(a.Y))
		r.LineTo(px(b.X), px(b.Y))
		r.LineTo(px(a.X), px(b.Y))
		r.LineTo(px(a.X), px(a.Y))
		r.Close()
		r.Fill()
	case OpPath:
		if len(c.Points) < 2 {
			return
		}
		applyStroke(r, c.Style, scale)
		if c.fills() {
			r.SetFillColor(c.Style.Fill)
		}
		r.MoveTo(px(c.Points[0].X), px(c.Points[0].Y))
		for _, pt := range c.Points[1:] {
			r.LineTo(px(pt.X), px(pt.Y))
		}
		if c.Closed {
			r.Close()
		}
		switch {
		case c.fills() && c.strokes():
			r.FillStroke()
		case c.fills():
			r.Fill()
		case c.strokes():
			r.Stroke()
		}
	case OpCircle:
		if len(c.Points) < 1 {
			return
		}
		applyStroke(r, c.Style, scale)
		r.SetFillColor(c.Style.Fill)
		r.Circle(c.Radius*scale, px(c.Points[0].X), px(c.Points[0].Y))
		r.FillStroke()
	case OpText:
		if len(c.Points) < 1 || c.Text == "" {
			return
		}
		if font != nil {
			r.SetFont(font)
		}
		r.SetFontSize(c.Style.FontSize * scale)
		r.SetFontColor(c.Style.FontColor)
		x := px(c.Points[0].X)
		switch c.Align {
		case AlignCenter:
			x -= r.MeasureText(c.Text).Width() / 2
		case AlignRight:
			x -= r.MeasureText(c.Text).Width()
		}
		r.Text(c.Text, x, px(c.Points[0].Y))
	}
}

func applyStroke(r chart.Renderer, s Style, scale float64) {
	r.SetStrokeColor(s.Stroke)
	r.SetStrokeWidth(s.Width * scale)
	if len(s.Dash) > 0 {
		dash := make([]float64, len(s.Dash))
		for i, d := range s.Dash {
			dash[i] = d * scale
		}
		r.SetStrokeDashArray(dash)
	}
}
