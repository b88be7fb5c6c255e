// Package hover turns pointer positions into the sample under the crosshair.
package hover

import (
	"fmt"

	"github.com/zyweven/daily-stock-analysis-sub001/src/scale"
	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
)

// State is the crosshair snapshot. The pixel anchor is the sample's own position, not the pointer's.
type State struct {
	PixelX float64
	PixelY float64
	Index  int
	Date   string
	Price  float64
}

// Test hit-tests a pointer position given in logical surface pixels. It returns nil outside the plot.
func Test(m *scale.Mapping, s *series.Series, x, y float64) *State {
	if m == nil || s == nil || s.Len() == 0 {
		return nil
	}
	if !m.Surface.Contains(x, y) {
		return nil
	}
	i := m.H.ToDomain(x)
	p := s.At(i)
	px, py := m.Point(s, i)
	return &State{PixelX: px, PixelY: py, Index: i, Date: p.Date, Price: p.Close}
}

// Equal compares two possibly nil states.
func Equal(a, b *State) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Lines is the tooltip body for the hovered sample.
func (h *State) Lines(s *series.Series) []string {
	lines := []string{h.Date, fmt.Sprintf("Close: %.2f", h.Price)}
	if s == nil || h.Index >= s.Len() {
		return lines
	}
	p := s.At(h.Index)
	if p.High != 0 || p.Low != 0 {
		lines = append(lines, fmt.Sprintf("High: %.2f  Low: %.2f", p.High, p.Low))
	}
	return lines
}

// Tracker owns the hover lifecycle of one chart instance.
type Tracker struct {
	mapping *scale.Mapping
	series  *series.Series
	current *State

	// OnChange fires whenever the hovered sample changes, including to nil.
	OnChange func(*State)
}

// Bind attaches fresh data. Any hover from the previous data is cleared.
func (t *Tracker) Bind(m *scale.Mapping, s *series.Series) {
	t.mapping, t.series = m, s
	t.set(nil)
}

// Current returns the hovered sample or nil.
func (t *Tracker) Current() *State { return t.current }

// Move handles a pointer move and reports whether the state changed.
func (t *Tracker) Move(x, y float64) bool {
	return t.set(Test(t.mapping, t.series, x, y))
}

// Leave clears the hover when the pointer exits the surface.
func (t *Tracker) Leave() bool { return t.set(nil) }

func (t *Tracker) set(h *State) bool {
	if Equal(t.current, h) {
		return false
	}
	t.current = h
	if t.OnChange != nil {
		t.OnChange(h)
	}
	return true
}
