package render

import "github.com/zyweven/daily-stock-analysis-sub001/src/types"

// Placeholder is a presentational state shown instead of a chart.
type Placeholder int

const (
	PlaceholderEmpty Placeholder = iota
	PlaceholderLoading
	PlaceholderFailed
)

// Message is the centred caption for the state.
func (k Placeholder) Message() string {
	switch k {
	case PlaceholderLoading:
		return "Loading…"
	case PlaceholderFailed:
		return "Failed to load"
	default:
		return "No data"
	}
}

// PlanPlaceholder fills the surface with the theme background and a centred caption.
func PlanPlaceholder(k Placeholder, surf types.SurfaceConfig, th Theme) []Command {
	if surf.Width <= 0 || surf.Height <= 0 {
		return nil
	}
	return []Command{
		{Layer: LayerBackground, Op: OpRect, Points: []Point{{0, 0}, {surf.Width, surf.Height}}, Style: Style{Fill: th.Background}},
		{Layer: LayerAxis, Op: OpText, Text: k.Message(), Points: []Point{{surf.Width / 2, surf.Height/2 + th.LabelFontSize/3}}, Align: AlignCenter,
			Style: Style{FontSize: th.LabelFontSize + 2, FontColor: th.Placeholder}},
	}
}
