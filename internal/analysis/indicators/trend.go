package indicators

import (
	"fmt"

	xerrors "marketmetrics/internal/errors"
	"marketmetrics/internal/models"
)

// SMA calculates the Simple Moving Average of close prices.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

func (s *SMA) Name() string {
	return fmt.Sprintf("SMA_%d", s.period)
}

func (s *SMA) Period() int {
	return s.period
}

func (s *SMA) Calculate(candles []models.Candle) ([]Value, error) {
	if s.period < 1 {
		return nil, xerrors.NewParameterError("period", s.period, "must be at least 1")
	}
	if len(candles) == 0 {
		return nil, xerrors.ErrInsufficientData
	}

	result := make([]Value, len(candles))
	closes := closePrices(candles)

	for i := s.period - 1; i < len(candles); i++ {
		result[i] = NewValue(mean(closes[i-s.period+1 : i+1]))
	}

	return result, nil
}

// EMA calculates the Exponential Moving Average of close prices. The first
// value, at index period-1, is seeded with the SMA of the first period
// closes; each later value follows close*k + prev*(1-k) with k = 2/(period+1).
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator.
func NewEMA(period int) *EMA {
	return &EMA{period: period}
}

func (e *EMA) Name() string {
	return fmt.Sprintf("EMA_%d", e.period)
}

func (e *EMA) Period() int {
	return e.period
}

func (e *EMA) Calculate(candles []models.Candle) ([]Value, error) {
	if e.period < 1 {
		return nil, xerrors.NewParameterError("period", e.period, "must be at least 1")
	}
	if len(candles) == 0 {
		return nil, xerrors.ErrInsufficientData
	}

	return emaValues(closePrices(candles), e.period), nil
}

// Series names produced by MACD.
const (
	MACDLine      = "macd"
	MACDSignal    = "signal"
	MACDHistogram = "histogram"
)

// MACD calculates Moving Average Convergence Divergence. The macd line is
// fast EMA minus slow EMA, defined from index slow-1; the signal line is an
// EMA of the macd line, defined after a further signal-1 points; the
// histogram is macd minus signal.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator. Conventional periods are 12, 26, 9.
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

func (m *MACD) Name() string {
	return fmt.Sprintf("MACD_%d_%d_%d", m.fastPeriod, m.slowPeriod, m.signalPeriod)
}

func (m *MACD) Period() int {
	return m.slowPeriod + m.signalPeriod - 1
}

func (m *MACD) Calculate(candles []models.Candle) (map[string][]Value, error) {
	if m.fastPeriod < 1 {
		return nil, xerrors.NewParameterError("fast period", m.fastPeriod, "must be at least 1")
	}
	if m.slowPeriod <= m.fastPeriod {
		return nil, xerrors.NewParameterError("slow period", m.slowPeriod, "must exceed the fast period")
	}
	if m.signalPeriod < 1 {
		return nil, xerrors.NewParameterError("signal period", m.signalPeriod, "must be at least 1")
	}
	if len(candles) == 0 {
		return nil, xerrors.ErrInsufficientData
	}

	n := len(candles)
	closes := closePrices(candles)
	fastEMA := emaValues(closes, m.fastPeriod)
	slowEMA := emaValues(closes, m.slowPeriod)

	// MACD line, defined wherever both EMAs are.
	macdLine := make([]Value, n)
	for i := range macdLine {
		if fastEMA[i].Valid && slowEMA[i].Valid {
			macdLine[i] = NewValue(fastEMA[i].Float64 - slowEMA[i].Float64)
		}
	}

	// Signal line: EMA over the defined portion of the macd line,
	// re-aligned to the candle indices.
	signalLine := make([]Value, n)
	start := FirstDefined(macdLine)
	if start >= 0 {
		compact := make([]float64, 0, n-start)
		for i := start; i < n; i++ {
			compact = append(compact, macdLine[i].Float64)
		}
		for i, v := range emaValues(compact, m.signalPeriod) {
			signalLine[start+i] = v
		}
	}

	histogram := make([]Value, n)
	for i := range histogram {
		if macdLine[i].Valid && signalLine[i].Valid {
			histogram[i] = NewValue(macdLine[i].Float64 - signalLine[i].Float64)
		}
	}

	return map[string][]Value{
		MACDLine:      macdLine,
		MACDSignal:    signalLine,
		MACDHistogram: histogram,
	}, nil
}
