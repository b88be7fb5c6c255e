package render

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/zyweven/daily-stock-analysis-sub001/src/scale"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

// Theme assigns colours to the chart's semantic roles. The role set is fixed; only the shades vary.
type Theme struct {
	Background  drawing.Color
	Grid        drawing.Color
	AxisText    drawing.Color
	Title       drawing.Color
	Curve       drawing.Color // primary accent
	AreaFill    drawing.Color
	Analysis    drawing.Color // warning / amber
	StopLoss    drawing.Color // danger / red
	TakeProfit  drawing.Color // success / green
	Up          drawing.Color
	Down        drawing.Color
	Crosshair   drawing.Color
	Placeholder drawing.Color

	AxisFontSize  float64
	LabelFontSize float64
	TitleFontSize float64
}

// DarkTheme matches the viewer's dark window theme.
func DarkTheme() Theme {
	accent := drawing.ColorFromHex("3b82f6")
	return Theme{
		Background:    drawing.ColorFromHex("111827"),
		Grid:          drawing.Color{R: 255, G: 255, B: 255, A: 24},
		AxisText:      drawing.ColorFromHex("9ca3af"),
		Title:         drawing.ColorFromHex("f3f4f6"),
		Curve:         accent,
		AreaFill:      accent.WithAlpha(48),
		Analysis:      drawing.ColorFromHex("f59e0b"),
		StopLoss:      drawing.ColorFromHex("ef4444"),
		TakeProfit:    drawing.ColorFromHex("22c55e"),
		Up:            drawing.ColorFromHex("22c55e"),
		Down:          drawing.ColorFromHex("ef4444"),
		Crosshair:     drawing.ColorFromHex("d1d5db"),
		Placeholder:   drawing.ColorFromHex("6b7280"),
		AxisFontSize:  11,
		LabelFontSize: 11,
		TitleFontSize: 15,
	}
}

// LightTheme is used for exported images meant for documents.
func LightTheme() Theme {
	t := DarkTheme()
	t.Background = drawing.ColorWhite
	t.Grid = drawing.ColorFromHex("e5e7eb")
	t.AxisText = drawing.ColorFromHex("6b7280")
	t.Title = drawing.ColorFromHex("111827")
	t.Crosshair = drawing.ColorFromHex("6b7280")
	t.Placeholder = drawing.ColorFromHex("9ca3af")
	return t
}

// View is a presentation preset: which layers are drawn and how the axes are mapped.
type View struct {
	Name          string
	Scale         scale.Config
	Padding       types.Padding
	GridDivisions int
	PriceLabels   bool
	VerticalGrid  bool
	AreaFill      bool
	Markers       bool
	DateLabels    int
	Header        bool
	Crosshair     bool
}

// Compact is the inline chart: tight price range, calendar x positions, minimal decoration.
var Compact = View{
	Name:          "compact",
	Scale:         scale.Config{Vertical: scale.Tight, Horizontal: scale.ByDate},
	Padding:       types.Padding{Top: 10, Right: 10, Bottom: 25, Left: 10},
	GridDivisions: 4,
	DateLabels:    3,
}

// Expanded is the modal chart: padded price range, uniform sample spacing, every layer on.
var Expanded = View{
	Name:          "expanded",
	Scale:         scale.Config{Vertical: scale.Padded, Horizontal: scale.ByIndex},
	Padding:       types.Padding{Top: 56, Right: 24, Bottom: 36, Left: 72},
	GridDivisions: 5,
	PriceLabels:   true,
	VerticalGrid:  true,
	AreaFill:      true,
	Markers:       true,
	DateLabels:    6,
	Header:        true,
	Crosshair:     true,
}

// ViewByName resolves "compact" or "expanded"; anything else is expanded.
func ViewByName(name string) View {
	if name == Compact.Name {
		return Compact
	}
	return Expanded
}
