// Command barsreader loads price history through the same sources as pricechart and prints a
// summary per code. With a cache path it also warms the SQLite cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/zyweven/daily-stock-analysis-sub001/src/logging"
	"github.com/zyweven/daily-stock-analysis-sub001/src/render"
	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
	"github.com/zyweven/daily-stock-analysis-sub001/src/source"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

func main() {
	var (
		file, codes, cache, baseURL, analysis string
		days                                  int
	)
	flag.StringVar(&file, "file", "", "Read bars from a JSON/JSONL/CSV file")
	flag.StringVar(&codes, "codes", "", "Comma-separated codes to fetch from Yahoo")
	flag.StringVar(&cache, "cache", "", "SQLite cache path")
	flag.StringVar(&baseURL, "base-url", "", "Yahoo chart API base URL")
	flag.StringVar(&analysis, "analysis", "", "Report the sample nearest to this date")
	flag.IntVar(&days, "days", 60, "Bars per code")
	flag.Parse()

	var f source.Fetcher = source.NewYahooFetcher(baseURL, os.Getenv("HTTPS_PROXY"))
	list := splitCodes(codes)
	if file != "" {
		f = &source.FileSource{Path: file}
		list = []string{file}
	}
	if len(list) == 0 {
		fmt.Fprintln(os.Stderr, "error: need -file or -codes")
		os.Exit(2)
	}
	if cache != "" && file == "" {
		c, err := source.OpenCache(cache, f, 6*time.Hour)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer c.Close()
		f = c
	}

	failed := 0
	for _, code := range list {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		bars, err := f.Fetch(ctx, code, days)
		cancel()
		if err != nil {
			logging.Errorf("[barsreader] %s: %v", code, err)
			failed++
			continue
		}
		if err := summarize(os.Stdout, code, bars, analysis); err != nil {
			logging.Errorf("[barsreader] %s: %v", code, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func splitCodes(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// summarize prints one block per code: sample count, date span, close range, latest change and,
// when asked, the sample an analysis marker would snap to.
func summarize(w io.Writer, code string, bars []types.Bar, analysisDate string) error {
	s, err := series.Normalize(types.Points(bars))
	if err != nil {
		return err
	}
	lo, hi := s.CloseRange()
	fmt.Fprintf(w, "%s: %d samples %s → %s\n", code, s.Len(), s.At(0).Date, s.Last().Date)
	fmt.Fprintf(w, "  close range: %s – %s\n", render.FormatPrice(lo), render.FormatPrice(hi))
	fmt.Fprintf(w, "  latest: %s\n", s.LatestChange().Label())
	if analysisDate != "" {
		if i, ok := s.NearestIndex(analysisDate); ok {
			p := s.At(i)
			fmt.Fprintf(w, "  analysis %s → #%d %s close %s\n", analysisDate, i, p.Date, render.FormatPrice(p.Close))
		} else {
			fmt.Fprintf(w, "  analysis %s: no matching sample\n", analysisDate)
		}
	}
	return nil
}
