package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"StockLens/internal/model"
)

const (
	yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=15m&period1=%d&period2=%d"

	maxFetchRetries = 3
	retryBaseDelay  = 500 * time.Millisecond
)

// YahooFetcher pulls 15-minute chart bars from the Yahoo Finance public API.
type YahooFetcher struct {
	client *http.Client
}

// NewYahooFetcher creates a Yahoo fetcher, optionally routed through a proxy.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// FetchIntraday returns the date's session prices bucketed by slot. Null
// ticks and bars outside the session are dropped, never zero-filled.
func (f *YahooFetcher) FetchIntraday(ctx context.Context, symbol string, date time.Time) (map[model.Slot]float64, error) {
	day := model.Day(date)
	u := fmt.Sprintf(yahooChartURL, url.PathEscape(symbol), day.Unix(), day.AddDate(0, 0, 1).Unix())

	body, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return parseIntraday(body, day)
}

func (f *YahooFetcher) get(ctx context.Context, u string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxFetchRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBaseDelay * time.Duration(attempt-1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0")

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("yahoo fetch: %w", err)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("yahoo read body: %w", err)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
			if resp.StatusCode == http.StatusNotFound {
				return nil, lastErr
			}
			continue
		}
		return body, nil
	}
	return nil, lastErr
}

// parseIntraday buckets chart bars into session slots for the given date.
// Each bar's close is matched to the nearest slot boundary; bars for other
// dates (the API pads ranges sometimes) are skipped.
func parseIntraday(body []byte, date time.Time) (map[model.Slot]float64, error) {
	if apiErr := gjson.GetBytes(body, "chart.error.description"); apiErr.Exists() {
		return nil, fmt.Errorf("yahoo api error: %s", apiErr.String())
	}
	timestamps := gjson.GetBytes(body, "chart.result.0.timestamp").Array()
	closes := gjson.GetBytes(body, "chart.result.0.indicators.quote.0.close").Array()
	if len(timestamps) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	wantY, wantM, wantD := date.Date()
	out := make(map[model.Slot]float64)
	for i, ts := range timestamps {
		if i >= len(closes) {
			break
		}
		if closes[i].Type == gjson.Null {
			continue
		}
		price := closes[i].Float()
		if price <= 0 {
			continue
		}
		at := time.Unix(ts.Int(), 0).In(model.MarketTZ)
		y, m, d := at.Date()
		if y != wantY || m != wantM || d != wantD {
			continue
		}
		slot, ok := model.SlotOf(at)
		if !ok {
			continue
		}
		if _, taken := out[slot]; taken {
			continue
		}
		out[slot] = price
	}
	return out, nil
}
