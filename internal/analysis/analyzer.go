package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"marketmetrics/internal/analysis/indicators"
	xerrors "marketmetrics/internal/errors"
	"marketmetrics/internal/models"
)

// Params holds the numeric configuration for one analysis run.
type Params struct {
	ShortWindow     int
	LongWindow      int
	RSIPeriod       int
	BollingerPeriod int
	BollingerMult   float64
	MACDFast        int
	MACDSlow        int
	MACDSignal      int
	VolumeShortMA   int
	VolumeLongMA    int
}

// DefaultParams returns the conventional parameter set.
func DefaultParams() Params {
	return Params{
		ShortWindow:     50,
		LongWindow:      200,
		RSIPeriod:       14,
		BollingerPeriod: 20,
		BollingerMult:   2.0,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		VolumeShortMA:   5,
		VolumeLongMA:    50,
	}
}

// FibSignal is a buy/sell hint derived from the last close relative to a
// retracement level.
type FibSignal struct {
	Ratio  float64
	Price  float64
	Action string // "buy" or "sell"
}

// Report holds the complete output of one analysis run. All series are
// aligned to Series.Candles.
type Report struct {
	Series *models.Series

	ShortMA []indicators.Value
	LongMA  []indicators.Value
	RSI     []indicators.Value
	MACD    map[string][]indicators.Value
	Bands   map[string][]indicators.Value

	VolumeShort []indicators.Value
	VolumeLong  []indicators.Value

	Fib        *indicators.FibonacciLevels
	FibSignals []FibSignal

	MACrossovers   []indicators.CrossoverEvent
	MACDCrossovers []indicators.CrossoverEvent

	Summary *Summary
}

// Analyzer runs the full indicator suite over a price series.
type Analyzer struct {
	params Params
	logger zerolog.Logger
}

// NewAnalyzer creates an analyzer with the given parameters.
func NewAnalyzer(params Params, logger zerolog.Logger) *Analyzer {
	return &Analyzer{params: params, logger: logger}
}

// Analyze computes every indicator, the crossover events and the summary
// statistics for the series. Invalid parameters abort the run; a series
// too short for a given indicator simply yields no defined points for it.
func (a *Analyzer) Analyze(ctx context.Context, series *models.Series) (*Report, error) {
	if series.Len() == 0 {
		return nil, xerrors.ErrInsufficientData
	}

	p := a.params
	shortMA := indicators.NewSMA(p.ShortWindow)
	longMA := indicators.NewSMA(p.LongWindow)
	rsi := indicators.NewRSI(p.RSIPeriod)
	volShort := indicators.NewVolumeSMA(p.VolumeShortMA)
	volLong := indicators.NewVolumeSMA(p.VolumeLongMA)
	macd := indicators.NewMACD(p.MACDFast, p.MACDSlow, p.MACDSignal)
	bands := indicators.NewBollingerBands(p.BollingerPeriod, p.BollingerMult)

	if p.ShortWindow >= p.LongWindow {
		return nil, xerrors.NewParameterError("long window", p.LongWindow, "must exceed the short window")
	}

	engine := indicators.NewEngine(4)
	engine.Register(shortMA)
	engine.Register(longMA)
	engine.Register(rsi)
	engine.Register(volShort)
	engine.Register(volLong)
	engine.RegisterMulti(macd)
	engine.RegisterMulti(bands)

	res, err := engine.CalculateAll(ctx, series.Candles)
	if err != nil {
		return nil, err
	}
	for name, err := range res.Errors {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	report := &Report{
		Series:      series,
		ShortMA:     res.Single[shortMA.Name()],
		LongMA:      res.Single[longMA.Name()],
		RSI:         res.Single[rsi.Name()],
		VolumeShort: res.Single[volShort.Name()],
		VolumeLong:  res.Single[volLong.Name()],
		MACD:        res.Multi[macd.Name()],
		Bands:       res.Multi[bands.Name()],
	}

	report.MACrossovers, err = indicators.DetectCrossovers(series.Candles, report.ShortMA, report.LongMA)
	if err != nil {
		return nil, err
	}
	report.MACDCrossovers, err = indicators.DetectCrossovers(series.Candles,
		report.MACD[indicators.MACDLine], report.MACD[indicators.MACDSignal])
	if err != nil {
		return nil, err
	}

	fib, err := indicators.NewFibonacciRetracement().Calculate(series.Candles)
	switch {
	case err == nil:
		report.Fib = fib
		report.FibSignals = fibSignals(fib, series.Candles[series.Len()-1].Close)
	case errors.Is(err, xerrors.ErrDegenerateRange):
		// Flat range, no meaningful levels. Skip rather than abort.
		a.logger.Debug().Str("symbol", series.Symbol).Msg("Skipping retracement for flat range")
	default:
		return nil, err
	}

	report.Summary, err = Summarize(series)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("symbol", series.Symbol).
		Int("bars", series.Len()).
		Int("ma_crossovers", len(report.MACrossovers)).
		Int("macd_crossovers", len(report.MACDCrossovers)).
		Msg("Analysis completed")

	return report, nil
}

// fibSignals compares the last close against each retracement level: a
// close above a level hints support below (buy), a close below hints
// resistance above (sell). Exact touches produce no hint.
func fibSignals(fib *indicators.FibonacciLevels, lastClose float64) []FibSignal {
	var signals []FibSignal
	for _, level := range fib.Levels {
		switch {
		case lastClose > level.Price:
			signals = append(signals, FibSignal{Ratio: level.Ratio, Price: level.Price, Action: "buy"})
		case lastClose < level.Price:
			signals = append(signals, FibSignal{Ratio: level.Ratio, Price: level.Price, Action: "sell"})
		}
	}
	return signals
}
