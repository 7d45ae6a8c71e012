package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/tidwall/gjson"

	xerrors "marketmetrics/internal/errors"
	"marketmetrics/internal/models"
	"marketmetrics/pkg/utils"
)

const defaultBaseURL = "https://financialmodelingprep.com/stable"

// FMPConfig represents the configuration for the FMP client.
type FMPConfig struct {
	// APIKey is the FMP API key.
	APIKey string
	// BaseURL overrides the API base URL, mainly for tests.
	BaseURL string
	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// FMPClient fetches daily bars from the Financial Modeling Prep API.
type FMPClient struct {
	cfg   FMPConfig
	httpc http.Client
	retry utils.RetryConfig
}

var _ Provider = (*FMPClient)(nil)

// NewFMPClient instantiates a new FMP client.
func NewFMPClient(cfg FMPConfig) *FMPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &FMPClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: cfg.Timeout},
		retry: utils.DefaultRetryConfig(),
	}
}

// DailyHistory fetches daily OHLCV bars for the symbol over [start, end],
// returned sorted ascending by date.
func (c *FMPClient) DailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]models.Candle, error) {
	const dailyHistoricalPath = "/historical-price-eod/full"

	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("apikey", c.cfg.APIKey)
	params.Add("from", start.Format(DateLayout))
	if !end.IsZero() {
		params.Add("to", end.Format(DateLayout))
	}
	formedURL := c.cfg.BaseURL + dailyHistoricalPath + "?" + params.Encode()

	body, err := utils.RetryWithResult(ctx, c.retry, func() ([]byte, error) {
		return c.get(ctx, formedURL)
	})
	if err != nil {
		return nil, xerrors.NewFetchError(symbol, "daily history", err)
	}

	candles, err := ParseCandles(gjson.ParseBytes(body).Array())
	if err != nil {
		return nil, xerrors.NewFetchError(symbol, "parse daily history", err)
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})

	return candles, nil
}

func (c *FMPClient) get(ctx context.Context, formedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, formedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// ParseCandles parses candles from the provided json elements.
func ParseCandles(data []gjson.Result) ([]models.Candle, error) {
	candles := make([]models.Candle, len(data))

	for idx := range data {
		var candle models.Candle

		candle.Open = data[idx].Get("open").Float()
		candle.High = data[idx].Get("high").Float()
		candle.Low = data[idx].Get("low").Float()
		candle.Close = data[idx].Get("close").Float()
		candle.Volume = data[idx].Get("volume").Int()

		dt, err := time.Parse(DateLayout, data[idx].Get("date").String())
		if err != nil {
			return nil, fmt.Errorf("parsing candle date: %w", err)
		}
		candle.Timestamp = dt

		candles[idx] = candle
	}

	return candles, nil
}
