package render

import "github.com/wcharczuk/go-chart/v2/drawing"

// Layer identifies a paint pass. Layers are painted in ascending order.
type Layer int

const (
	LayerBackground Layer = iota
	LayerGrid
	LayerVerticalGrid
	LayerArea
	LayerCurve
	LayerMarkers
	LayerAnalysis
	LayerLevels
	LayerAxis
	LayerHeader
	LayerCrosshair
)

var layerNames = [...]string{"background", "grid", "vgrid", "area", "curve", "markers", "analysis", "levels", "axis", "header", "crosshair"}

func (l Layer) String() string {
	if l < 0 || int(l) >= len(layerNames) {
		return "unknown"
	}
	return layerNames[l]
}

// Op is the primitive a command draws.
type Op int

const (
	OpRect Op = iota
	OpPath
	OpCircle
	OpText
)

// Align anchors text horizontally at its x.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Point is a logical pixel position.
type Point struct{ X, Y float64 }

// Style is the subset of stroke, fill and font state a command needs.
type Style struct {
	Stroke    drawing.Color
	Fill      drawing.Color
	Width     float64
	Dash      []float64
	FontSize  float64
	FontColor drawing.Color
}

// Command is one draw instruction in logical pixels.
type Command struct {
	Layer  Layer
	Op     Op
	Points []Point // rect: two corners; path: vertices
	Closed bool
	Radius float64
	Text   string
	Align  Align
	Style  Style
}

func (c Command) fills() bool   { return c.Style.Fill.A > 0 }
func (c Command) strokes() bool { return c.Style.Width > 0 && c.Style.Stroke.A > 0 }
