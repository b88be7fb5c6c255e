// Package scale maps between data space (price, sample) and logical pixel space.
package scale

import (
	"math"

	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

// VerticalMode selects how much breathing room the price axis gets.
type VerticalMode int

const (
	// Tight uses the raw extremes as the axis bounds.
	Tight VerticalMode = iota
	// Padded widens both ends by PadFraction of the raw range.
	Padded
)

// PadFraction is the share of the raw range added above and below in Padded mode.
const PadFraction = 0.1

func (m VerticalMode) String() string {
	if m == Padded {
		return "padded"
	}
	return "tight"
}

// PriceBounds returns min and max over all closes plus the stop-loss and take-profit levels when set.
func PriceBounds(s *series.Series, ov types.OverlayValues) (float64, float64) {
	lo, hi := s.CloseRange()
	for _, v := range []*float64{ov.StopLoss, ov.TakeProfit} {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		lo = math.Min(lo, *v)
		hi = math.Max(hi, *v)
	}
	return lo, hi
}

// Vertical is the affine price <-> y transform. Price grows upward, y grows downward.
type Vertical struct {
	Min   float64
	Max   float64
	Range float64 // divisor; never zero
	Mode  VerticalMode

	top    float64
	height float64
}

// NewVertical builds the transform for [rawMin, rawMax] on a plot starting at top with the given height.
// A zero raw range (flat series, single sample) is replaced by 1.
func NewVertical(rawMin, rawMax float64, mode VerticalMode, top, height float64) *Vertical {
	rng := rawMax - rawMin
	if rng == 0 {
		rng = 1
	}
	v := &Vertical{Min: rawMin, Max: rawMax, Range: rng, Mode: mode, top: top, height: height}
	if mode == Padded {
		v.Min = rawMin - PadFraction*rng
		v.Max = rawMax + PadFraction*rng
		v.Range = v.Max - v.Min
	}
	return v
}

// PriceToY maps a price to a y coordinate.
func (v *Vertical) PriceToY(price float64) float64 {
	return v.top + (v.Max-price)/v.Range*v.height
}

// YToPrice is the inverse of PriceToY.
func (v *Vertical) YToPrice(y float64) float64 {
	return v.Max - (y-v.top)/v.height*v.Range
}

// Levels returns divisions+1 evenly spaced prices from the top of the plot to the bottom.
func (v *Vertical) Levels(divisions int) []float64 {
	if divisions < 1 {
		divisions = 1
	}
	out := make([]float64, divisions+1)
	for k := 0; k <= divisions; k++ {
		out[k] = v.YToPrice(v.top + float64(k)/float64(divisions)*v.height)
	}
	return out
}
