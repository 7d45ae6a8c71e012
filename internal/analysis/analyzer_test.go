package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"marketmetrics/internal/analysis/indicators"
	xerrors "marketmetrics/internal/errors"
	"marketmetrics/internal/models"
)

func testParams() Params {
	return Params{
		ShortWindow:     3,
		LongWindow:      5,
		RSIPeriod:       5,
		BollingerPeriod: 5,
		BollingerMult:   2.0,
		MACDFast:        3,
		MACDSlow:        6,
		MACDSignal:      4,
		VolumeShortMA:   2,
		VolumeLongMA:    4,
	}
}

func TestAnalyzeFullReport(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 9, 8, 9, 10, 11, 12, 13, 14, 13, 12}
	series := seriesFromCloses(t, closes, 24*time.Hour)

	report, err := NewAnalyzer(testParams(), zerolog.Nop()).Analyze(context.Background(), series)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	n := len(closes)
	for name, values := range map[string][]indicators.Value{
		"short MA":     report.ShortMA,
		"long MA":      report.LongMA,
		"RSI":          report.RSI,
		"volume short": report.VolumeShort,
		"volume long":  report.VolumeLong,
	} {
		if len(values) != n {
			t.Errorf("%s: got %d values, want %d", name, len(values), n)
		}
	}
	if len(report.MACD[indicators.MACDLine]) != n {
		t.Errorf("MACD line: got %d values, want %d", len(report.MACD[indicators.MACDLine]), n)
	}
	if len(report.Bands[indicators.BandMiddle]) != n {
		t.Errorf("band middle: got %d values, want %d", len(report.Bands[indicators.BandMiddle]), n)
	}

	// The dip-and-recover shape produces a death cross on the way down and
	// a golden cross on the recovery.
	if len(report.MACrossovers) != 2 {
		t.Fatalf("got %d MA crossovers, want 2", len(report.MACrossovers))
	}
	if report.MACrossovers[0].Kind != indicators.DeathCross {
		t.Errorf("first crossover: got %s, want death", report.MACrossovers[0].Kind)
	}
	if report.MACrossovers[1].Kind != indicators.GoldenCross {
		t.Errorf("second crossover: got %s, want golden", report.MACrossovers[1].Kind)
	}

	if report.Fib == nil {
		t.Fatal("expected retracement levels")
	}
	if len(report.FibSignals) == 0 {
		t.Error("expected retracement signals for a close off every level")
	}
	if report.Summary == nil {
		t.Fatal("expected summary statistics")
	}
	if report.Summary.MaxClose != 14 || report.Summary.MinClose != 8 {
		t.Errorf("summary extremes: got %v/%v, want 14/8", report.Summary.MaxClose, report.Summary.MinClose)
	}
}

func TestAnalyzeWindowOrdering(t *testing.T) {
	series := seriesFromCloses(t, []float64{10, 11, 12}, 24*time.Hour)

	params := testParams()
	params.ShortWindow = 5
	params.LongWindow = 5

	_, err := NewAnalyzer(params, zerolog.Nop()).Analyze(context.Background(), series)
	if !errors.Is(err, xerrors.ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}

func TestAnalyzeEmptySeries(t *testing.T) {
	series := &models.Series{Symbol: "TEST"}
	_, err := NewAnalyzer(testParams(), zerolog.Nop()).Analyze(context.Background(), series)
	if !errors.Is(err, xerrors.ErrInsufficientData) {
		t.Errorf("got %v, want ErrInsufficientData", err)
	}
}

func TestAnalyzeInvalidIndicatorParameter(t *testing.T) {
	series := seriesFromCloses(t, []float64{10, 11, 12, 13, 14, 15}, 24*time.Hour)

	params := testParams()
	params.RSIPeriod = 0

	_, err := NewAnalyzer(params, zerolog.Nop()).Analyze(context.Background(), series)
	if !errors.Is(err, xerrors.ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}

func TestAnalyzeShortSeriesStillSucceeds(t *testing.T) {
	// Two bars cannot warm up any indicator, but that is not an error.
	series := seriesFromCloses(t, []float64{10, 11}, 24*time.Hour)

	report, err := NewAnalyzer(testParams(), zerolog.Nop()).Analyze(context.Background(), series)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if indicators.DefinedCount(report.ShortMA) != 0 {
		t.Error("expected no defined MA points for a two-bar series")
	}
	if len(report.MACrossovers) != 0 {
		t.Error("expected no crossovers without defined averages")
	}
}

func TestFibSignals(t *testing.T) {
	fib, err := indicators.NewFibonacciRetracement().CalculateLevels(120, 100, true)
	if err != nil {
		t.Fatalf("CalculateLevels: %v", err)
	}

	signals := fibSignals(fib, 110)
	if len(signals) != len(fib.Levels)-1 {
		// 110 touches the 50% level exactly, which yields no hint.
		t.Fatalf("got %d signals, want %d", len(signals), len(fib.Levels)-1)
	}
	for _, s := range signals {
		switch {
		case s.Price < 110 && s.Action != "buy":
			t.Errorf("level %v below close: got %q, want buy", s.Price, s.Action)
		case s.Price > 110 && s.Action != "sell":
			t.Errorf("level %v above close: got %q, want sell", s.Price, s.Action)
		}
	}
}
