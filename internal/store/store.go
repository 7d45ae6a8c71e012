// Package store provides persistence for fetched price history, so
// repeated analyses of the same symbol and range avoid refetching.
package store

import (
	"context"
	"time"

	"marketmetrics/internal/models"
)

// DataStore defines the interface for candle persistence.
type DataStore interface {
	SaveCandles(ctx context.Context, symbol string, candles []models.Candle) error
	GetCandles(ctx context.Context, symbol string, from, to time.Time) ([]models.Candle, error)
	LastTimestamp(ctx context.Context, symbol string) (time.Time, error)
	Close() error
}
