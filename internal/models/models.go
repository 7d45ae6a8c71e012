// Package models provides the domain models shared by the analysis,
// fetch, store and chart packages.
package models

import (
	"fmt"
	"time"
)

// Candle represents one OHLCV bar for a fixed interval.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// Validate checks the internal consistency of a single candle.
func (c Candle) Validate() error {
	if c.Timestamp.IsZero() {
		return fmt.Errorf("candle has zero timestamp")
	}
	if c.Open < 0 || c.High < 0 || c.Low < 0 || c.Close < 0 {
		return fmt.Errorf("candle at %s has negative price", c.Timestamp.Format(time.RFC3339))
	}
	if c.Volume < 0 {
		return fmt.Errorf("candle at %s has negative volume", c.Timestamp.Format(time.RFC3339))
	}
	lo, hi := c.Open, c.Close
	if lo > hi {
		lo, hi = hi, lo
	}
	if c.Low > lo || c.High < hi {
		return fmt.Errorf("candle at %s violates low <= open/close <= high", c.Timestamp.Format(time.RFC3339))
	}
	return nil
}

// Series is a validated, time-ascending price series. Once constructed it
// is treated as read-only; analysis code borrows the candle slice and must
// not mutate it.
type Series struct {
	Symbol  string
	Candles []Candle
}

// NewSeries validates the candles and wraps them in a Series. Candles must
// already be sorted ascending by timestamp with no duplicates; gaps are
// fine, indicators work on sequence position rather than wall-clock spacing.
func NewSeries(symbol string, candles []Candle) (*Series, error) {
	for i, c := range candles {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if i > 0 && !candles[i-1].Timestamp.Before(c.Timestamp) {
			return nil, fmt.Errorf("candles out of order at %s: timestamps must be strictly increasing",
				c.Timestamp.Format(time.RFC3339))
		}
	}
	return &Series{Symbol: symbol, Candles: candles}, nil
}

// Len returns the number of candles in the series.
func (s *Series) Len() int {
	return len(s.Candles)
}

// Closes extracts the close prices.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		closes[i] = c.Close
	}
	return closes
}

// Timestamps extracts the candle timestamps.
func (s *Series) Timestamps() []time.Time {
	ts := make([]time.Time, len(s.Candles))
	for i, c := range s.Candles {
		ts[i] = c.Timestamp
	}
	return ts
}

// Span returns the calendar duration covered by the series.
func (s *Series) Span() time.Duration {
	if len(s.Candles) < 2 {
		return 0
	}
	return s.Candles[len(s.Candles)-1].Timestamp.Sub(s.Candles[0].Timestamp)
}
