// Package series validates caller-supplied price samples and answers the per-sample questions the
// chart layers ask: time positions, the analysis-date anchor and the latest price change.
package series

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

var (
	// ErrEmptySeries means there is nothing to draw; callers show the no-data state.
	ErrEmptySeries = errors.New("empty series")
	// ErrBadDate is returned when a time-based mapping needs a date that does not parse.
	ErrBadDate = errors.New("unparseable sample date")
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"20060102",
}

// ParseDate accepts calendar dates plus the timestamp forms price sources emit.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
}

// Series is a non-empty, caller-ordered sample sequence.
type Series struct {
	points []types.PricePoint
	times  []time.Time
	parsed []bool
	badAt  int // index of first unparseable date, -1 when all parse
}

// Normalize drops samples whose close is NaN or infinite and returns ErrEmptySeries when nothing is left.
// Order is kept as given.
func Normalize(points []types.PricePoint) (*Series, error) {
	s := &Series{badAt: -1}
	for _, p := range points {
		if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			continue
		}
		s.points = append(s.points, p)
	}
	if len(s.points) == 0 {
		return nil, ErrEmptySeries
	}
	s.times = make([]time.Time, len(s.points))
	s.parsed = make([]bool, len(s.points))
	for i, p := range s.points {
		t, err := ParseDate(p.Date)
		if err != nil {
			if s.badAt < 0 {
				s.badAt = i
			}
			continue
		}
		s.times[i], s.parsed[i] = t, true
	}
	return s, nil
}

// Len is the number of samples.
func (s *Series) Len() int { return len(s.points) }

// At returns sample i.
func (s *Series) At(i int) types.PricePoint { return s.points[i] }

// Points returns the samples; callers must not modify the slice.
func (s *Series) Points() []types.PricePoint { return s.points }

// Last returns the newest sample.
func (s *Series) Last() types.PricePoint { return s.points[len(s.points)-1] }

// Times returns the parsed sample dates, or ErrBadDate naming the first sample that failed.
func (s *Series) Times() ([]time.Time, error) {
	if s.badAt >= 0 {
		return nil, fmt.Errorf("sample %d %q: %w", s.badAt, s.points[s.badAt].Date, ErrBadDate)
	}
	return s.times, nil
}

// CloseRange returns the min and max close.
func (s *Series) CloseRange() (float64, float64) {
	lo, hi := s.points[0].Close, s.points[0].Close
	for _, p := range s.points[1:] {
		lo = math.Min(lo, p.Close)
		hi = math.Max(hi, p.Close)
	}
	return lo, hi
}

// NearestIndex locates the sample whose date is closest to date. Ties go to the lower index.
// When date does not parse only an exact string match is accepted.
func (s *Series) NearestIndex(date string) (int, bool) {
	if strings.TrimSpace(date) == "" {
		return 0, false
	}
	target, err := ParseDate(date)
	if err != nil {
		for i, p := range s.points {
			if p.Date == date {
				return i, true
			}
		}
		return 0, false
	}
	best := -1
	var bestD time.Duration
	for i, t := range s.times {
		if !s.parsed[i] {
			continue
		}
		d := t.Sub(target)
		if d < 0 {
			d = -d
		}
		if best < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best, best >= 0
}
