package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zyweven/daily-stock-analysis-sub001/src/logging"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

// FileSource reads bars from a local file. The format follows the extension: .json (array),
// .jsonl/.ndjson (one bar per line) or .csv (header row naming the columns). The code is ignored.
type FileSource struct {
	Path string
}

func (f *FileSource) Name() string { return "file" }

func (f *FileSource) Fetch(ctx context.Context, code string, days int) ([]types.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	defer fh.Close()
	bars, err := Decode(fh, formatOf(f.Path))
	if err != nil {
		return nil, fmt.Errorf("file source %s: %w", filepath.Base(f.Path), err)
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	logging.Debugf("[source] loaded %d bars from %s", len(bars), f.Path)
	return sortAndTrim(bars, days), nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".jsonl", ".ndjson":
		return "jsonl"
	default:
		return "json"
	}
}

// Decode parses bars in the named format: "json", "jsonl" or "csv".
func Decode(r io.Reader, format string) ([]types.Bar, error) {
	switch format {
	case "csv":
		return decodeCSV(r)
	case "jsonl":
		return decodeJSONL(r)
	default:
		var bars []types.Bar
		if err := json.NewDecoder(r).Decode(&bars); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return bars, nil
	}
}

func decodeJSONL(r io.Reader) ([]types.Bar, error) {
	var bars []types.Bar
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var bar types.Bar
		if err := json.Unmarshal(b, &bar); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bars = append(bars, bar)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return bars, nil
}

var csvAliases = map[string]string{
	"date":           "date",
	"trade_date":     "date",
	"open":           "open",
	"high":           "high",
	"low":            "low",
	"close":          "close",
	"volume":         "volume",
	"vol":            "volume",
	"amount":         "amount",
	"change_percent": "pct",
	"pct_chg":        "pct",
}

func decodeCSV(r io.Reader) ([]types.Bar, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		if k, ok := csvAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[k] = i
		}
	}
	if _, ok := cols["date"]; !ok {
		return nil, fmt.Errorf("csv: no date column")
	}
	if _, ok := cols["close"]; !ok {
		return nil, fmt.Errorf("csv: no close column")
	}
	var bars []types.Bar
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", row, err)
		}
		num := func(k string) (float64, error) {
			i, ok := cols[k]
			if !ok || i >= len(rec) || strings.TrimSpace(rec[i]) == "" {
				return 0, nil
			}
			return strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
		}
		bar := types.Bar{Date: strings.TrimSpace(rec[cols["date"]])}
		for k, dst := range map[string]*float64{
			"open": &bar.Open, "high": &bar.High, "low": &bar.Low, "close": &bar.Close,
			"volume": &bar.Volume, "amount": &bar.Amount, "pct": &bar.ChangePercent,
		} {
			v, err := num(k)
			if err != nil {
				return nil, fmt.Errorf("csv row %d %s: %w", row, k, err)
			}
			*dst = v
		}
		bars = append(bars, bar)
	}
	return bars, nil
}
