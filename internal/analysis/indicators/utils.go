package indicators

import (
	"gonum.org/v1/gonum/stat"

	"marketmetrics/internal/models"
)

// closePrices extracts close prices from candles.
func closePrices(candles []models.Candle) []float64 {
	prices := make([]float64, len(candles))
	for i, c := range candles {
		prices[i] = c.Close
	}
	return prices
}

// highPrices extracts high prices from candles.
func highPrices(candles []models.Candle) []float64 {
	prices := make([]float64, len(candles))
	for i, c := range candles {
		prices[i] = c.High
	}
	return prices
}

// lowPrices extracts low prices from candles.
func lowPrices(candles []models.Candle) []float64 {
	prices := make([]float64, len(candles))
	for i, c := range candles {
		prices[i] = c.Low
	}
	return prices
}

// volumeValues extracts volumes from candles as floats.
func volumeValues(candles []models.Candle) []float64 {
	vols := make([]float64, len(candles))
	for i, c := range candles {
		vols[i] = float64(c.Volume)
	}
	return vols
}

// mean calculates the arithmetic mean of a slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// popStdDev calculates the population standard deviation of a slice.
func popStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.PopStdDev(values, nil)
}

// highest returns the highest value in a slice and its index.
func highest(values []float64) (float64, int) {
	if len(values) == 0 {
		return 0, -1
	}
	h, idx := values[0], 0
	for i, v := range values[1:] {
		if v > h {
			h = v
			idx = i + 1
		}
	}
	return h, idx
}

// lowest returns the lowest value in a slice and its index.
func lowest(values []float64) (float64, int) {
	if len(values) == 0 {
		return 0, -1
	}
	l, idx := values[0], 0
	for i, v := range values[1:] {
		if v < l {
			l = v
			idx = i + 1
		}
	}
	return l, idx
}

// emaValues computes an EMA over raw values, returning a series aligned to
// the input. The value at period-1 is seeded with the simple mean of the
// first period values; earlier points are undefined. Returns an
// all-undefined series when the input is shorter than the period.
func emaValues(values []float64, period int) []Value {
	result := make([]Value, len(values))
	if len(values) < period {
		return result
	}
	multiplier := 2.0 / float64(period+1)
	prev := mean(values[:period])
	result[period-1] = NewValue(prev)
	for i := period; i < len(values); i++ {
		prev = values[i]*multiplier + prev*(1-multiplier)
		result[i] = NewValue(prev)
	}
	return result
}
