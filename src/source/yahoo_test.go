package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{"chart":{"result":[{"meta":{"gmtoffset":28800},
"timestamp":[1704159000,1704245400,1704331800],
"indicators":{"quote":[{"open":[10,null,12],"high":[11,null,13],"low":[9,null,11],
"close":[10.5,null,12.6],"volume":[100,null,300]}]}}],"error":null}}`

func TestYahooFetch(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		_, _ = w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL+"/", "")
	bars, err := f.Fetch(context.Background(), "600519", 30)
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/600519.SS", gotPath)
	assert.Equal(t, "interval=1d&range=3mo", gotQuery)

	require.Len(t, bars, 2, "null close rows are skipped")
	assert.Equal(t, "2024-01-02", bars[0].Date)
	assert.Equal(t, "2024-01-04", bars[1].Date)
	assert.Equal(t, 12.6, bars[1].Close)
	assert.InDelta(t, 20.0, bars[1].ChangePercent, 1e-9)
}

func TestYahooErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"status", http.StatusTooManyRequests, "slow down", "status 429"},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`, "No data found"},
		{"garbage", http.StatusOK, `<html>`, "yahoo decode"},
		{"empty", http.StatusOK, `{"chart":{"result":[{"timestamp":[],"indicators":{"quote":[]}}]}}`, ErrNoData.Error()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				_, _ = w.Write([]byte(c.body))
			}))
			defer srv.Close()
			_, err := NewYahooFetcher(srv.URL, "").Fetch(context.Background(), "AAPL", 10)
			assert.ErrorContains(t, err, c.want)
		})
	}
}

func TestYahooSymbolAndRange(t *testing.T) {
	f := NewYahooFetcher("", "")
	assert.Equal(t, DefaultYahooURL, f.BaseURL)
	assert.Equal(t, "^GSPC", f.Symbol("SPX"))
	assert.Equal(t, "000001.SS", f.Symbol("000001"))
	assert.Equal(t, "000002.SZ", f.Symbol("000002"))
	assert.Equal(t, "AAPL", f.Symbol("AAPL"))

	for days, want := range map[int]string{5: "1mo", 60: "3mo", 100: "6mo", 250: "1y", 400: "2y", 900: "5y"} {
		assert.Equal(t, want, Range(days), "days=%d", days)
	}
}

func TestYahooHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chartBody))
	}))
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewYahooFetcher(srv.URL, "").Fetch(ctx, "AAPL", 10)
	assert.ErrorIs(t, err, context.Canceled)
}
