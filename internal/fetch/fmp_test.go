package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

const sampleHistory = `[
	{"symbol": "DDOG", "date": "2024-03-05", "open": 130.5, "high": 133.1, "low": 129.8, "close": 132.4, "volume": 4100000},
	{"symbol": "DDOG", "date": "2024-03-04", "open": 128.0, "high": 131.2, "low": 127.5, "close": 130.6, "volume": 3800000}
]`

func TestParseCandles(t *testing.T) {
	candles, err := ParseCandles(gjson.Parse(sampleHistory).Array())
	if err != nil {
		t.Fatalf("ParseCandles: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("got %d candles, want 2", len(candles))
	}

	first := candles[0]
	wantTime := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !first.Timestamp.Equal(wantTime) {
		t.Errorf("timestamp: got %v, want %v", first.Timestamp, wantTime)
	}
	if first.Open != 130.5 || first.High != 133.1 || first.Low != 129.8 || first.Close != 132.4 {
		t.Errorf("prices: got %+v", first)
	}
	if first.Volume != 4100000 {
		t.Errorf("volume: got %d, want 4100000", first.Volume)
	}
}

func TestParseCandlesBadDate(t *testing.T) {
	_, err := ParseCandles(gjson.Parse(`[{"date": "03/05/2024", "close": 1}]`).Array())
	if err == nil {
		t.Fatal("expected an error for an unparseable date")
	}
}

func TestParseCandlesEmpty(t *testing.T) {
	candles, err := ParseCandles(gjson.Parse(`[]`).Array())
	if err != nil {
		t.Fatalf("ParseCandles: %v", err)
	}
	if len(candles) != 0 {
		t.Errorf("got %d candles, want none", len(candles))
	}
}

func TestDailyHistory(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k, v := range r.URL.Query() {
			gotQuery[k] = v[0]
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleHistory))
	}))
	defer server.Close()

	client := NewFMPClient(FMPConfig{APIKey: "test-key", BaseURL: server.URL})

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	candles, err := client.DailyHistory(context.Background(), "DDOG", start, end)
	if err != nil {
		t.Fatalf("DailyHistory: %v", err)
	}

	if gotPath != "/historical-price-eod/full" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotQuery["symbol"] != "DDOG" || gotQuery["apikey"] != "test-key" {
		t.Errorf("query: got %v", gotQuery)
	}
	if gotQuery["from"] != "2024-03-01" || gotQuery["to"] != "2024-03-10" {
		t.Errorf("date range: got %v", gotQuery)
	}

	// The API returns newest-first; the client sorts ascending.
	if len(candles) != 2 {
		t.Fatalf("got %d candles, want 2", len(candles))
	}
	if !candles[0].Timestamp.Before(candles[1].Timestamp) {
		t.Error("candles should be sorted ascending by timestamp")
	}
}

func TestDailyHistoryServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewFMPClient(FMPConfig{APIKey: "bad-key", BaseURL: server.URL})
	client.retry.MaxAttempts = 1

	_, err := client.DailyHistory(context.Background(), "DDOG", time.Now().AddDate(0, -1, 0), time.Now())
	if err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}
