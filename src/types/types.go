// Package types holds the data model shared by the charting packages and their collaborators.
package types

import "errors"

// ErrInvalidSurface is returned when the plot area inside the padding has no positive extent.
var ErrInvalidSurface = errors.New("invalid surface size")

// PricePoint is one sample of the series. Only Close is projected onto the vertical axis.
type PricePoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
}

// Bar is the full record delivered by price-history sources.
type Bar struct {
	Date          string  `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	Volume        float64 `json:"volume,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	ChangePercent float64 `json:"change_percent,omitempty"`
}

// Point projects the bar onto the fields the chart consumes.
func (b Bar) Point() PricePoint {
	return PricePoint{Date: b.Date, Close: b.Close, High: b.High, Low: b.Low}
}

// Points converts a bar slice, keeping order.
func Points(bars []Bar) []PricePoint {
	out := make([]PricePoint, len(bars))
	for i, b := range bars {
		out[i] = b.Point()
	}
	return out
}

// OverlayValues are caller-supplied reference values. Nil means absent.
type OverlayValues struct {
	AnalysisDate string
	StopLoss     *float64
	TakeProfit   *float64
}

// Float returns a pointer to v, convenient for building OverlayValues.
func Float(v float64) *float64 { return &v }

// Padding in logical pixels around the plot area.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// SurfaceConfig describes the logical drawing surface.
type SurfaceConfig struct {
	Width   float64
	Height  float64
	Padding Padding
}

// ChartWidth is the plot area width.
func (s SurfaceConfig) ChartWidth() float64 { return s.Width - s.Padding.Left - s.Padding.Right }

// ChartHeight is the plot area height.
func (s SurfaceConfig) ChartHeight() float64 { return s.Height - s.Padding.Top - s.Padding.Bottom }

// Valid reports whether both plot dimensions are positive.
func (s SurfaceConfig) Valid() bool { return s.ChartWidth() > 0 && s.ChartHeight() > 0 }

// Validate returns ErrInvalidSurface when the plot area is empty.
func (s SurfaceConfig) Validate() error {
	if !s.Valid() {
		return ErrInvalidSurface
	}
	return nil
}

// PlotRight is the x coordinate of the plot's right edge.
func (s SurfaceConfig) PlotRight() float64 { return s.Width - s.Padding.Right }

// PlotBottom is the y coordinate of the plot's bottom edge.
func (s SurfaceConfig) PlotBottom() float64 { return s.Height - s.Padding.Bottom }

// Contains reports whether (x,y) lies inside the plot rectangle, edges included.
func (s SurfaceConfig) Contains(x, y float64) bool {
	return x >= s.Padding.Left && x <= s.PlotRight() && y >= s.Padding.Top && y <= s.PlotBottom()
}
