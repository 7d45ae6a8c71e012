// Package fetch provides clients for retrieving historical market data.
// The analysis core never performs I/O itself; it consumes the candle
// slices these clients return.
package fetch

import (
	"context"
	"time"

	"marketmetrics/internal/models"
)

// DateLayout is the wire format for provider dates.
const DateLayout = "2006-01-02"

// Provider fetches historical daily bars for a symbol.
type Provider interface {
	DailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]models.Candle, error)
}
