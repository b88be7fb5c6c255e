package render

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
)

// FormatPrice renders a level label with exactly two decimals.
func FormatPrice(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatAxisPrice keeps axis labels short: fewer decimals for larger magnitudes.
func FormatAxisPrice(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 10000:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 1000:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// FormatDateTick shortens calendar dates to MM-DD; other labels pass through.
func FormatDateTick(date string) string {
	t, err := series.ParseDate(date)
	if err != nil {
		return date
	}
	if t.Hour() != 0 || t.Minute() != 0 {
		return t.Format("01-02 15:04")
	}
	return t.Format("01-02")
}
