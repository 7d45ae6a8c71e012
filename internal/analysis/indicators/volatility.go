package indicators

import (
	"fmt"

	xerrors "marketmetrics/internal/errors"
	"marketmetrics/internal/models"
)

// Series names produced by BollingerBands.
const (
	BandMiddle   = "middle"
	BandUpper    = "upper"
	BandLower    = "lower"
	BandWidth    = "bandwidth"
	BandPercentB = "percent_b"
)

// BollingerBands calculates Bollinger Bands. The middle band is the SMA of
// closes, the upper and lower bands sit multiplier population standard
// deviations above and below it.
type BollingerBands struct {
	period     int
	multiplier float64
}

// NewBollingerBands creates a new Bollinger Bands indicator. Conventional
// parameters are period 20, multiplier 2.0.
func NewBollingerBands(period int, multiplier float64) *BollingerBands {
	return &BollingerBands{
		period:     period,
		multiplier: multiplier,
	}
}

func (b *BollingerBands) Name() string {
	return fmt.Sprintf("BollingerBands_%d_%.1f", b.period, b.multiplier)
}

func (b *BollingerBands) Period() int {
	return b.period
}

func (b *BollingerBands) Calculate(candles []models.Candle) (map[string][]Value, error) {
	if b.period < 2 {
		return nil, xerrors.NewParameterError("period", b.period, "must be at least 2")
	}
	if b.multiplier <= 0 {
		return nil, xerrors.NewParameterError("multiplier", b.multiplier, "must be positive")
	}
	if len(candles) == 0 {
		return nil, xerrors.ErrInsufficientData
	}

	n := len(candles)
	closes := closePrices(candles)

	middle := make([]Value, n)
	upper := make([]Value, n)
	lower := make([]Value, n)
	bandwidth := make([]Value, n)
	percentB := make([]Value, n)

	for i := b.period - 1; i < n; i++ {
		window := closes[i-b.period+1 : i+1]
		sma := mean(window)
		sd := popStdDev(window)

		middle[i] = NewValue(sma)
		upper[i] = NewValue(sma + b.multiplier*sd)
		lower[i] = NewValue(sma - b.multiplier*sd)

		if sma != 0 {
			bandwidth[i] = NewValue((upper[i].Float64 - lower[i].Float64) / sma)
		}
		if width := upper[i].Float64 - lower[i].Float64; width != 0 {
			percentB[i] = NewValue((closes[i] - lower[i].Float64) / width)
		}
	}

	return map[string][]Value{
		BandMiddle:   middle,
		BandUpper:    upper,
		BandLower:    lower,
		BandWidth:    bandwidth,
		BandPercentB: percentB,
	}, nil
}
