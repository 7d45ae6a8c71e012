package indicators

import (
	"time"

	xerrors "marketmetrics/internal/errors"
	"marketmetrics/internal/models"
)

// RetracementRatios is the fixed ratio set emitted for every level set.
var RetracementRatios = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1.0}

// FibLevel is one retracement level.
type FibLevel struct {
	Ratio float64
	Price float64
}

// FibonacciLevels holds the retracement levels derived from one swing
// high/low pair. Immutable once calculated.
type FibonacciLevels struct {
	SwingHigh float64
	SwingLow  float64
	HighTime  time.Time
	LowTime   time.Time
	Uptrend   bool
	Levels    []FibLevel
}

// Level returns the price at the given ratio, or false when the ratio is
// not part of the emitted set.
func (f *FibonacciLevels) Level(ratio float64) (float64, bool) {
	for _, l := range f.Levels {
		if l.Ratio == ratio {
			return l.Price, true
		}
	}
	return 0, false
}

// FibonacciRetracement derives retracement levels from the extremes of a
// candle range. This is a one-shot calculation, not a rolling series.
type FibonacciRetracement struct{}

// NewFibonacciRetracement creates a new Fibonacci retracement calculator.
func NewFibonacciRetracement() *FibonacciRetracement {
	return &FibonacciRetracement{}
}

func (f *FibonacciRetracement) Name() string {
	return "FibonacciRetracement"
}

// Calculate finds the highest high and lowest low in the range and derives
// the level set. The trend direction is inferred from chronology: when the
// low precedes the high the range is an uptrend and levels retrace down
// from the high; otherwise they retrace up from the low.
func (f *FibonacciRetracement) Calculate(candles []models.Candle) (*FibonacciLevels, error) {
	if len(candles) == 0 {
		return nil, xerrors.ErrInsufficientData
	}

	high, highIdx := highest(highPrices(candles))
	low, lowIdx := lowest(lowPrices(candles))

	levels, err := f.CalculateLevels(high, low, lowIdx <= highIdx)
	if err != nil {
		return nil, err
	}
	levels.HighTime = candles[highIdx].Timestamp
	levels.LowTime = candles[lowIdx].Timestamp
	return levels, nil
}

// CalculateLevels derives the level set from explicit swing points.
func (f *FibonacciRetracement) CalculateLevels(swingHigh, swingLow float64, uptrend bool) (*FibonacciLevels, error) {
	if swingHigh == swingLow {
		return nil, xerrors.ErrDegenerateRange
	}

	diff := swingHigh - swingLow
	levels := make([]FibLevel, len(RetracementRatios))
	for i, r := range RetracementRatios {
		price := swingLow + r*diff
		if uptrend {
			price = swingHigh - r*diff
		}
		levels[i] = FibLevel{Ratio: r, Price: price}
	}

	return &FibonacciLevels{
		SwingHigh: swingHigh,
		SwingLow:  swingLow,
		Uptrend:   uptrend,
		Levels:    levels,
	}, nil
}
