package types

import (
	"errors"
	"testing"
)

func TestSurfaceConfigDimensions(t *testing.T) {
	s := SurfaceConfig{Width: 300, Height: 120, Padding: Padding{Top: 10, Right: 10, Bottom: 25, Left: 10}}
	if s.ChartWidth() != 280 || s.ChartHeight() != 85 {
		t.Fatalf("unexpected plot size %vx%v", s.ChartWidth(), s.ChartHeight())
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("valid surface rejected: %v", err)
	}
	bad := SurfaceConfig{Width: 20, Height: 120, Padding: Padding{Left: 10, Right: 10}}
	if !errors.Is(bad.Validate(), ErrInvalidSurface) {
		t.Fatalf("zero-width plot must be invalid")
	}
}

func TestSurfaceConfigContainsEdges(t *testing.T) {
	s := SurfaceConfig{Width: 100, Height: 100, Padding: Padding{Top: 10, Right: 10, Bottom: 10, Left: 10}}
	for _, p := range [][2]float64{{10, 10}, {90, 90}, {50, 50}} {
		if !s.Contains(p[0], p[1]) {
			t.Fatalf("expected %v inside", p)
		}
	}
	for _, p := range [][2]float64{{9.9, 50}, {90.1, 50}, {50, 9.9}, {50, 90.1}} {
		if s.Contains(p[0], p[1]) {
			t.Fatalf("expected %v outside", p)
		}
	}
}

func TestPointsKeepsOrder(t *testing.T) {
	bars := []Bar{{Date: "2024-01-01", Close: 1, High: 2, Low: 0.5}, {Date: "2024-01-02", Close: 3}}
	pts := Points(bars)
	if len(pts) != 2 || pts[0].Date != "2024-01-01" || pts[1].Close != 3 || pts[0].High != 2 {
		t.Fatalf("unexpected points %#v", pts)
	}
}
