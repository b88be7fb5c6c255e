package scale

import (
	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

// HorizontalKind selects the sample spacing strategy.
type HorizontalKind int

const (
	// ByIndex spaces samples uniformly.
	ByIndex HorizontalKind = iota
	// ByDate places samples at their calendar position.
	ByDate
)

func (k HorizontalKind) String() string {
	if k == ByDate {
		return "date"
	}
	return "index"
}

// Config picks the two mapping strategies.
type Config struct {
	Vertical   VerticalMode
	Horizontal HorizontalKind
}

// Mapping bundles both axes for one surface and series.
type Mapping struct {
	Surface types.SurfaceConfig
	V       *Vertical
	H       Horizontal
}

// New builds the mapping. It fails with series.ErrEmptySeries for a nil series, types.ErrInvalidSurface
// when the plot area is empty, and series.ErrBadDate when ByDate meets an unparseable date.
func New(s *series.Series, ov types.OverlayValues, surf types.SurfaceConfig, cfg Config) (*Mapping, error) {
	if s == nil || s.Len() == 0 {
		return nil, series.ErrEmptySeries
	}
	if err := surf.Validate(); err != nil {
		return nil, err
	}
	lo, hi := PriceBounds(s, ov)
	m := &Mapping{
		Surface: surf,
		V:       NewVertical(lo, hi, cfg.Vertical, surf.Padding.Top, surf.ChartHeight()),
	}
	switch cfg.Horizontal {
	case ByDate:
		times, err := s.Times()
		if err != nil {
			return nil, err
		}
		m.H = NewDateScale(times, surf.Padding.Left, surf.ChartWidth())
	default:
		m.H = NewIndexScale(s.Len(), surf.Padding.Left, surf.ChartWidth())
	}
	return m, nil
}

// Point returns the pixel anchor of sample i of s.
func (m *Mapping) Point(s *series.Series, i int) (float64, float64) {
	return m.H.ToPixel(i), m.V.PriceToY(s.At(i).Close)
}

// EvenIndices returns up to count evenly spaced sample indices that always include the first and last.
func EvenIndices(n, count int) []int {
	if n <= 0 || count <= 0 {
		return nil
	}
	if n == 1 || count == 1 {
		return []int{0}
	}
	if count > n {
		count = n
	}
	out := make([]int, 0, count)
	for k := 0; k < count; k++ {
		i := (k*(n-1) + (count-1)/2) / (count - 1)
		if len(out) > 0 && out[len(out)-1] == i {
			continue
		}
		out = append(out, i)
	}
	return out
}
