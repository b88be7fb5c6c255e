package main

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/zyweven/daily-stock-analysis-sub001/src/series"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

func TestSplitCodes(t *testing.T) {
	got := splitCodes(" 600519, ,AAPL,")
	if !reflect.DeepEqual(got, []string{"600519", "AAPL"}) {
		t.Fatalf("got %#v", got)
	}
	if splitCodes("") != nil {
		t.Fatalf("empty input should give nil")
	}
}

func TestSummarize(t *testing.T) {
	bars := []types.Bar{
		{Date: "2024-01-01", Close: 10},
		{Date: "2024-01-02", Close: 12},
		{Date: "2024-01-05", Close: 8},
	}
	var buf bytes.Buffer
	if err := summarize(&buf, "X", bars, "2024-01-04"); err != nil {
		t.Fatalf("summarize: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"X: 3 samples 2024-01-01 → 2024-01-05",
		"close range: 8.00 – 12.00",
		"latest: 8.00 -4.00 (-33.33%)",
		"analysis 2024-01-04 → #2 2024-01-05 close 8.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := summarize(&buf, "X", nil, "")
	if !errors.Is(err, series.ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
}
