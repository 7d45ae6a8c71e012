// Package analysis provides summary statistics computed alongside the
// rolling indicators: price extremes, mean levels and realized volatility.
package analysis

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"marketmetrics/internal/analysis/indicators"
	xerrors "marketmetrics/internal/errors"
	"marketmetrics/internal/models"
)

const (
	tradingDaysPerYear = 252
	daysPerYear        = 365
)

// Summary holds one-shot statistics over a full price series.
type Summary struct {
	MaxClose  float64
	MinClose  float64
	MeanClose float64
	// MaxTimes and MinTimes list every timestamp at which the extreme
	// close was hit.
	MaxTimes []time.Time
	MinTimes []time.Time

	// DailyVolatility is the standard deviation of close-to-close
	// percent changes. AnnualVolatility scales it by sqrt(252) and is
	// only defined when the series spans at least a calendar year.
	DailyVolatility  float64
	AnnualVolatility indicators.Value

	MeanVolume float64
}

// Summarize computes summary statistics for the series.
func Summarize(series *models.Series) (*Summary, error) {
	candles := series.Candles
	if len(candles) == 0 {
		return nil, xerrors.ErrInsufficientData
	}

	closes := series.Closes()
	sum := &Summary{
		MaxClose:  closes[0],
		MinClose:  closes[0],
		MeanClose: stat.Mean(closes, nil),
	}

	for _, v := range closes {
		if v > sum.MaxClose {
			sum.MaxClose = v
		}
		if v < sum.MinClose {
			sum.MinClose = v
		}
	}
	for i, v := range closes {
		if v == sum.MaxClose {
			sum.MaxTimes = append(sum.MaxTimes, candles[i].Timestamp)
		}
		if v == sum.MinClose {
			sum.MinTimes = append(sum.MinTimes, candles[i].Timestamp)
		}
	}

	var totalVolume float64
	for _, c := range candles {
		totalVolume += float64(c.Volume)
	}
	sum.MeanVolume = totalVolume / float64(len(candles))

	if len(closes) >= 2 {
		changes := make([]float64, 0, len(closes)-1)
		for i := 1; i < len(closes); i++ {
			if closes[i-1] != 0 {
				changes = append(changes, (closes[i]-closes[i-1])/closes[i-1])
			}
		}
		if len(changes) >= 2 {
			sum.DailyVolatility = stat.StdDev(changes, nil)
			if series.Span() >= daysPerYear*24*time.Hour {
				sum.AnnualVolatility = indicators.NewValue(
					sum.DailyVolatility * math.Sqrt(tradingDaysPerYear))
			}
		}
	}

	return sum, nil
}
