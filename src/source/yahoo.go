package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zyweven/daily-stock-analysis-sub001/src/logging"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

// DefaultYahooURL is the public chart endpoint.
const DefaultYahooURL = "https://query1.finance.yahoo.com"

// YahooFetcher reads daily bars from the Yahoo Finance chart API.
type YahooFetcher struct {
	Client  *http.Client
	BaseURL string
	// SymbolMap maps local codes to Yahoo tickers.
	SymbolMap map[string]string
}

// NewYahooFetcher builds a fetcher with a 30s timeout, optionally routed through proxyURL.
func NewYahooFetcher(baseURL, proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		} else {
			logging.Warnf("[source] ignoring bad proxy %q: %v", proxyURL, err)
		}
	}
	if baseURL == "" {
		baseURL = DefaultYahooURL
	}
	return &YahooFetcher{
		Client:  &http.Client{Timeout: 30 * time.Second, Transport: transport},
		BaseURL: strings.TrimRight(baseURL, "/"),
		SymbolMap: map[string]string{
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
			"NDX":    "^NDX",
			"HSI":    "^HSI",
			"000001": "000001.SS",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// Symbol maps a local code to a Yahoo ticker. Six-digit mainland codes get the exchange suffix.
func (f *YahooFetcher) Symbol(code string) string {
	if mapped, ok := f.SymbolMap[code]; ok {
		return mapped
	}
	if len(code) == 6 && strings.Trim(code, "0123456789") == "" {
		if code[0] == '6' || code[0] == '9' {
			return code + ".SS"
		}
		return code + ".SZ"
	}
	return code
}

type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GMTOffset int64 `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func at(vs []*float64, i int) float64 {
	if i >= len(vs) || vs[i] == nil {
		return 0
	}
	return *vs[i]
}

// Range picks the smallest Yahoo range covering days trading sessions.
func Range(days int) string {
	switch {
	case days <= 20:
		return "1mo"
	case days <= 60:
		return "3mo"
	case days <= 120:
		return "6mo"
	case days <= 250:
		return "1y"
	case days <= 500:
		return "2y"
	default:
		return "5y"
	}
}

func (f *YahooFetcher) Fetch(ctx context.Context, code string, days int) ([]types.Bar, error) {
	defer logging.TimeTrack(time.Now(), "yahoo fetch "+code)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s", f.BaseURL, url.PathEscape(f.Symbol(code)), Range(days))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %.200s", resp.StatusCode, body)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", code, ErrNoData)
	}

	res := chart.Chart.Result[0]
	q := res.Indicators.Quote[0]
	offset := time.Duration(res.Meta.GMTOffset) * time.Second
	bars := make([]types.Bar, 0, len(res.Timestamp))
	var prev float64
	for i, ts := range res.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		b := types.Bar{
			Date:   time.Unix(ts, 0).UTC().Add(offset).Format("2006-01-02"),
			Open:   at(q.Open, i),
			High:   at(q.High, i),
			Low:    at(q.Low, i),
			Close:  *q.Close[i],
			Volume: at(q.Volume, i),
		}
		if prev != 0 {
			b.ChangePercent = (b.Close - prev) / prev * 100
		}
		prev = b.Close
		bars = append(bars, b)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", code, ErrNoData)
	}
	logging.Debugf("[source] yahoo %s: %d bars", code, len(bars))
	return sortAndTrim(bars, days), nil
}
