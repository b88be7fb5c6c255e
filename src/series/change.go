package series

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Change is the price badge: the latest close against the previous sample.
type Change struct {
	Latest      decimal.Decimal
	Delta       decimal.Decimal
	Percent     decimal.Decimal
	HasPrevious bool
}

// Up reports a non-negative delta; the badge is green for it, red otherwise.
func (c Change) Up() bool { return !c.Delta.IsNegative() }

// LatestChange compares the last close with the second-to-last one.
func (s *Series) LatestChange() Change {
	last := decimal.NewFromFloat(s.Last().Close)
	c := Change{Latest: last}
	if s.Len() < 2 {
		return c
	}
	prev := decimal.NewFromFloat(s.points[s.Len()-2].Close)
	c.HasPrevious = true
	c.Delta = last.Sub(prev)
	if !prev.IsZero() {
		c.Percent = c.Delta.Div(prev).Mul(hundred).Round(2)
	}
	return c
}

// Label renders "12.00 +2.00 (+20.00%)"; without a previous sample only the price.
func (c Change) Label() string {
	if !c.HasPrevious {
		return c.Latest.StringFixed(2)
	}
	sign := "+"
	if c.Delta.IsNegative() {
		sign = ""
	}
	return fmt.Sprintf("%s %s%s (%s%s%%)", c.Latest.StringFixed(2), sign, c.Delta.StringFixed(2), sign, c.Percent.StringFixed(2))
}
