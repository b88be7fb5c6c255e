// Package surface owns a chart's drawing surface: logical size, device pixel ratio, resize and
// pointer handling, and encoding the painted result.
package surface

import "math"

// Sizing derives the logical surface size from the container.
type Sizing struct {
	// FixedWidth and FixedHeight, when set, ignore the container.
	FixedWidth  float64
	FixedHeight float64
	// AspectRatio is height/width for container-driven sizing.
	AspectRatio float64
	// MaxWidth caps the width; 0 means uncapped.
	MaxWidth float64
}

// CompactSizing is the inline chart's fixed size.
var CompactSizing = Sizing{FixedWidth: 300, FixedHeight: 120}

// ExpandedSizing follows the container width at 2:1, capped at 900px.
var ExpandedSizing = Sizing{AspectRatio: 0.5, MaxWidth: 900}

// Logical returns the width and height for a container of the given width.
func (s Sizing) Logical(containerWidth float64) (float64, float64) {
	if s.FixedWidth > 0 && s.FixedHeight > 0 {
		return s.FixedWidth, s.FixedHeight
	}
	w := math.Floor(containerWidth)
	if s.MaxWidth > 0 && w > s.MaxWidth {
		w = s.MaxWidth
	}
	if w < 0 {
		w = 0
	}
	return w, math.Floor(w * s.AspectRatio)
}

// Physical converts a logical length to device pixels.
func Physical(logical, ratio float64) int {
	return int(math.Round(logical * normRatio(ratio)))
}

func normRatio(r float64) float64 {
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 1
	}
	return r
}
