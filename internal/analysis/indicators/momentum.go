package indicators

import (
	"fmt"

	xerrors "marketmetrics/internal/errors"
	"marketmetrics/internal/models"
)

// RSI calculates the Relative Strength Index. Seed averages are the simple
// means of the first period gains and losses, giving the first value at
// index period; later averages use Wilder smoothing.
//
// Flat-market policy: when the average loss is zero but the average gain is
// not, RSI is 100; when both averages are zero (no movement at all over the
// window) RSI is 50. The 50 convention is a deliberate choice, technical
// analysis literature does not standardize this tie-break.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator. The conventional period is 14.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

func (r *RSI) Name() string {
	return fmt.Sprintf("RSI_%d", r.period)
}

func (r *RSI) Period() int {
	return r.period + 1
}

func (r *RSI) Calculate(candles []models.Candle) ([]Value, error) {
	if r.period < 1 {
		return nil, xerrors.NewParameterError("period", r.period, "must be at least 1")
	}
	if len(candles) == 0 {
		return nil, xerrors.ErrInsufficientData
	}

	n := len(candles)
	result := make([]Value, n)
	if n < r.period+1 {
		return result, nil
	}

	closes := closePrices(candles)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := mean(gains[1 : r.period+1])
	avgLoss := mean(losses[1 : r.period+1])
	result[r.period] = NewValue(rsiValue(avgGain, avgLoss))

	for i := r.period + 1; i < n; i++ {
		avgGain = (avgGain*float64(r.period-1) + gains[i]) / float64(r.period)
		avgLoss = (avgLoss*float64(r.period-1) + losses[i]) / float64(r.period)
		result[i] = NewValue(rsiValue(avgGain, avgLoss))
	}

	return result, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
