// Package source loads daily price history for the chart from files, the Yahoo chart API,
// or a SQLite cache in front of either.
package source

import (
	"context"
	"errors"
	"sort"

	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

// ErrNoData is returned when a source has nothing for the requested code.
var ErrNoData = errors.New("no price data")

// Fetcher returns up to days daily bars for code, oldest first.
type Fetcher interface {
	Fetch(ctx context.Context, code string, days int) ([]types.Bar, error)
	Name() string
}

// sortAndTrim orders bars by date and keeps the newest days of them. Unparseable dates sort by string.
func sortAndTrim(bars []types.Bar, days int) []types.Bar {
	sort.SliceStable(bars, func(i, j int) bool {
		ti, ei := series.ParseDate(bars[i].Date)
		tj, ej := series.ParseDate(bars[j].Date)
		if ei != nil || ej != nil {
			return bars[i].Date < bars[j].Date
		}
		return ti.Before(tj)
	})
	if days > 0 && len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars
}
