package scale

import (
	"math"
	"sort"
	"time"
)

// Horizontal maps sample indices to x and back. Implementations differ in how they space samples.
type Horizontal interface {
	// ToPixel returns the x coordinate of sample i.
	ToPixel(i int) float64
	// ToDomain returns the index of the sample nearest to x, clamped to the series.
	ToDomain(x float64) int
	// Len is the number of samples mapped.
	Len() int
}

// IndexScale spaces samples uniformly regardless of calendar gaps.
type IndexScale struct {
	n     int
	left  float64
	width float64
}

// NewIndexScale maps n samples across [left, left+width].
func NewIndexScale(n int, left, width float64) *IndexScale {
	return &IndexScale{n: n, left: left, width: width}
}

func (s *IndexScale) Len() int { return s.n }

// ToPixel anchors a single sample at the left edge.
func (s *IndexScale) ToPixel(i int) float64 {
	if s.n <= 1 {
		return s.left
	}
	return s.left + float64(i)/float64(s.n-1)*s.width
}

func (s *IndexScale) ToDomain(x float64) int {
	if s.n <= 1 {
		return 0
	}
	i := int(math.Round((x - s.left) / s.width * float64(s.n-1)))
	return clamp(i, 0, s.n-1)
}

// DateScale places samples at their true calendar position.
type DateScale struct {
	times  []time.Time
	minT   time.Time
	spanMs float64
	left   float64
	width  float64
}

// NewDateScale maps the given ascending times across [left, left+width]. A zero span is replaced by 1ms.
func NewDateScale(times []time.Time, left, width float64) *DateScale {
	s := &DateScale{times: times, left: left, width: width, spanMs: 1}
	if len(times) == 0 {
		return s
	}
	minT, maxT := times[0], times[0]
	for _, t := range times[1:] {
		if t.Before(minT) {
			minT = t
		}
		if t.After(maxT) {
			maxT = t
		}
	}
	s.minT = minT
	if span := float64(maxT.Sub(minT).Milliseconds()); span > 0 {
		s.spanMs = span
	}
	return s
}

func (s *DateScale) Len() int { return len(s.times) }

// DateToX maps an arbitrary time, not necessarily a sample.
func (s *DateScale) DateToX(t time.Time) float64 {
	return s.left + float64(t.Sub(s.minT).Milliseconds())/s.spanMs*s.width
}

// XToDate is the inverse of DateToX.
func (s *DateScale) XToDate(x float64) time.Time {
	ms := (x - s.left) / s.width * s.spanMs
	return s.minT.Add(time.Duration(math.Round(ms)) * time.Millisecond)
}

func (s *DateScale) ToPixel(i int) float64 { return s.DateToX(s.times[i]) }

// ToDomain picks the sample nearest in time to x; ties go to the earlier sample.
func (s *DateScale) ToDomain(x float64) int {
	n := len(s.times)
	if n <= 1 {
		return 0
	}
	t := s.XToDate(x)
	j := sort.Search(n, func(k int) bool { return !s.times[k].Before(t) })
	if j == 0 {
		return 0
	}
	if j == n {
		return n - 1
	}
	if t.Sub(s.times[j-1]) <= s.times[j].Sub(t) {
		return j - 1
	}
	return j
}

func clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
