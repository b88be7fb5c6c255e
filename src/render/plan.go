// Package render turns a price series and its overlays into layered draw commands and paints them
// onto a go-chart renderer.
package render

import (
	"errors"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/zyweven/daily-stock-analysis-sub001/src/hover"
	"github.com/zyweven/daily-stock-analysis-sub001/src/logging"
	"github.com/zyweven/daily-stock-analysis-sub001/src/scale"
	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

// Outcome says what a render produced.
type Outcome int

const (
	Rendered Outcome = iota
	Empty
	SkippedInvalidSurface
)

func (o Outcome) String() string {
	switch o {
	case Empty:
		return "empty"
	case SkippedInvalidSurface:
		return "skipped"
	default:
		return "rendered"
	}
}

// Frame is every input of one render.
type Frame struct {
	Series   *series.Series
	Overlays types.OverlayValues
	Surface  types.SurfaceConfig
	View     View
	Theme    Theme
	Title    string
	Hover    *hover.State
}

// Scene is the result of planning: the mapping used and the commands in paint order.
type Scene struct {
	Mapping  *scale.Mapping
	Commands []Command
}

var (
	levelDash     = []float64{6, 4}
	analysisDash  = []float64{4, 4}
	crosshairDash = []float64{3, 3}
)

// Plan computes the scene for f. It never fails: an empty series yields Empty, an unusable
// surface yields SkippedInvalidSurface, both with no commands.
func Plan(f Frame) (*Scene, Outcome) {
	if f.Series == nil || f.Series.Len() == 0 {
		return nil, Empty
	}
	if !f.Surface.Valid() {
		logging.Debugf("[render] skip %s chart: plot area %.0fx%.0f", f.View.Name, f.Surface.ChartWidth(), f.Surface.ChartHeight())
		return nil, SkippedInvalidSurface
	}
	m, err := scale.New(f.Series, f.Overlays, f.Surface, f.View.Scale)
	if errors.Is(err, series.ErrBadDate) {
		logging.Debugf("[render] %v; falling back to index spacing", err)
		cfg := f.View.Scale
		cfg.Horizontal = scale.ByIndex
		m, err = scale.New(f.Series, f.Overlays, f.Surface, cfg)
	}
	if err != nil {
		logging.Debugf("[render] mapping failed: %v", err)
		return nil, SkippedInvalidSurface
	}
	p := &planner{f: f, m: m, s: f.Series, th: f.Theme}
	p.background()
	p.grid()
	if f.View.VerticalGrid {
		p.verticalGrid()
	}
	if f.View.AreaFill {
		p.area()
	}
	p.curve()
	if f.View.Markers {
		p.markers()
	}
	p.analysis()
	p.levels()
	p.axis()
	if f.View.Header {
		p.header()
	}
	if f.View.Crosshair && f.Hover != nil {
		p.crosshair(f.Hover)
	}
	return &Scene{Mapping: m, Commands: p.cmds}, Rendered
}

type planner struct {
	f    Frame
	m    *scale.Mapping
	s    *series.Series
	th   Theme
	cmds []Command
}

func (p *planner) add(c Command) { p.cmds = append(p.cmds, c) }

func (p *planner) line(l Layer, x1, y1, x2, y2 float64, col drawing.Color, width float64, dash []float64) {
	p.add(Command{Layer: l, Op: OpPath, Points: []Point{{x1, y1}, {x2, y2}}, Style: Style{Stroke: col, Width: width, Dash: dash}})
}

func (p *planner) text(l Layer, s string, x, y float64, a Align, size float64, col drawing.Color) {
	p.add(Command{Layer: l, Op: OpText, Text: s, Points: []Point{{x, y}}, Align: a, Style: Style{FontSize: size, FontColor: col}})
}

func (p *planner) dot(l Layer, x, y, r float64, fill, stroke drawing.Color, width float64) {
	p.add(Command{Layer: l, Op: OpCircle, Points: []Point{{x, y}}, Radius: r, Style: Style{Fill: fill, Stroke: stroke, Width: width}})
}

func (p *planner) plot() (left, top, right, bottom float64) {
	s := p.f.Surface
	return s.Padding.Left, s.Padding.Top, s.PlotRight(), s.PlotBottom()
}

func (p *planner) background() {
	s := p.f.Surface
	p.add(Command{Layer: LayerBackground, Op: OpRect, Points: []Point{{0, 0}, {s.Width, s.Height}}, Style: Style{Fill: p.th.Background}})
}

func (p *planner) grid() {
	left, top, right, _ := p.plot()
	div := p.f.View.GridDivisions
	if div < 1 {
		div = 1
	}
	h := p.f.Surface.ChartHeight()
	for k, price := range p.m.V.Levels(div) {
		y := top + float64(k)/float64(div)*h
		p.line(LayerGrid, left, y, right, y, p.th.Grid, 1, nil)
		if p.f.View.PriceLabels && p.m.V.Mode == scale.Padded {
			p.text(LayerGrid, FormatAxisPrice(price), left-8, y+p.th.AxisFontSize/3, AlignRight, p.th.AxisFontSize, p.th.AxisText)
		}
	}
}

func (p *planner) verticalGrid() {
	_, top, _, bottom := p.plot()
	for _, i := range scale.EvenIndices(p.s.Len(), p.f.View.DateLabels) {
		x := p.m.H.ToPixel(i)
		p.line(LayerVerticalGrid, x, top, x, bottom, p.th.Grid, 1, nil)
	}
}

func (p *planner) curvePoints() []Point {
	pts := make([]Point, p.s.Len())
	for i := range pts {
		x, y := p.m.Point(p.s, i)
		pts[i] = Point{x, y}
	}
	return pts
}

func (p *planner) area() {
	if p.s.Len() < 2 {
		return
	}
	_, _, _, bottom := p.plot()
	curve := p.curvePoints()
	poly := make([]Point, 0, len(curve)+2)
	poly = append(poly, Point{curve[0].X, bottom})
	poly = append(poly, curve...)
	poly = append(poly, Point{curve[len(curve)-1].X, bottom})
	p.add(Command{Layer: LayerArea, Op: OpPath, Points: poly, Closed: true, Style: Style{Fill: p.th.AreaFill}})
}

func (p *planner) curve() {
	pts := p.curvePoints()
	if len(pts) == 1 {
		p.dot(LayerCurve, pts[0].X, pts[0].Y, 2.5, p.th.Curve, p.th.Curve, 1)
		return
	}
	p.add(Command{Layer: LayerCurve, Op: OpPath, Points: pts, Style: Style{Stroke: p.th.Curve, Width: 2}})
}

// MarkerStep is the sample stride for point markers on a series of n samples.
func MarkerStep(n int) int {
	if n <= 0 {
		return 1
	}
	return int(math.Ceil(float64(n) / 20))
}

func (p *planner) markers() {
	step := MarkerStep(p.s.Len())
	for i := 0; i < p.s.Len(); i += step {
		x, y := p.m.Point(p.s, i)
		p.dot(LayerMarkers, x, y, 2.5, p.th.Curve, p.th.Background, 1)
	}
}

func (p *planner) analysis() {
	i, ok := p.s.NearestIndex(p.f.Overlays.AnalysisDate)
	if !ok {
		return
	}
	left, top, right, bottom := p.plot()
	x, y := p.m.Point(p.s, i)
	col := p.th.Analysis
	p.line(LayerAnalysis, x, top, x, bottom, col, 1, analysisDash)

	size := p.th.LabelFontSize
	label := "Analysis " + FormatDateTick(p.s.At(i).Date)
	w := estimateTextWidth(label, size) + 8
	fh := size + 6
	fy := top - fh - 4
	if fy < 0 {
		fy = top
	}
	fx := math.Max(0, math.Min(x-w/2, p.f.Surface.Width-w))
	p.add(Command{Layer: LayerAnalysis, Op: OpRect, Points: []Point{{fx, fy}, {fx + w, fy + fh}}, Style: Style{Fill: col}})
	p.text(LayerAnalysis, label, fx+w/2, fy+fh-4, AlignCenter, size, p.th.Background)

	p.dot(LayerAnalysis, x, y, 5, col, drawing.ColorWhite, 2)
	badge := FormatPrice(p.s.At(i).Close)
	if x > (left+right)/2 {
		p.text(LayerAnalysis, badge, x-9, y-8, AlignRight, size, col)
	} else {
		p.text(LayerAnalysis, badge, x+9, y-8, AlignLeft, size, col)
	}
}

func (p *planner) levels() {
	left, _, right, _ := p.plot()
	draw := func(v *float64, name string, col drawing.Color) {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return
		}
		y := p.m.V.PriceToY(*v)
		p.line(LayerLevels, left, y, right, y, col, 1.5, levelDash)
		p.text(LayerLevels, name+" "+FormatPrice(*v), right-4, y-4, AlignRight, p.th.LabelFontSize, col)
	}
	draw(p.f.Overlays.StopLoss, "SL", p.th.StopLoss)
	draw(p.f.Overlays.TakeProfit, "TP", p.th.TakeProfit)
}

func (p *planner) axis() {
	_, _, _, bottom := p.plot()
	y := bottom + p.th.AxisFontSize + 6
	for _, i := range scale.EvenIndices(p.s.Len(), p.f.View.DateLabels) {
		p.text(LayerAxis, FormatDateTick(p.s.At(i).Date), p.m.H.ToPixel(i), y, AlignCenter, p.th.AxisFontSize, p.th.AxisText)
	}
}

func (p *planner) header() {
	left, _, right, _ := p.plot()
	y := p.th.TitleFontSize + 8
	if p.f.Title != "" {
		p.text(LayerHeader, p.f.Title, left, y, AlignLeft, p.th.TitleFontSize, p.th.Title)
	}
	c := p.s.LatestChange()
	col := p.th.Up
	if !c.Up() {
		col = p.th.Down
	}
	p.text(LayerHeader, c.Label(), right, y, AlignRight, p.th.TitleFontSize, col)
}

func (p *planner) crosshair(h *hover.State) {
	left, top, right, bottom := p.plot()
	p.line(LayerCrosshair, h.PixelX, top, h.PixelX, bottom, p.th.Crosshair, 1, crosshairDash)
	p.line(LayerCrosshair, left, h.PixelY, right, h.PixelY, p.th.Crosshair, 1, crosshairDash)
	p.dot(LayerCrosshair, h.PixelX, h.PixelY, 4, p.th.Curve, drawing.ColorWhite, 2)
}

// estimateTextWidth approximates rendered width without a font; Paint measures exactly.
func estimateTextWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.6
}
