package indicators

import (
	"errors"
	"testing"

	xerrors "marketmetrics/internal/errors"
)

func TestRSIWarmup(t *testing.T) {
	closes := []float64{44, 44.5, 44.1, 44.8, 45.2, 45.0, 44.7, 45.5}
	period := 5
	values, err := NewRSI(period).Calculate(candlesFromCloses(closes))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if got := FirstDefined(values); got != period {
		t.Errorf("first defined index: got %d, want %d", got, period)
	}
	if got := DefinedCount(values); got != len(closes)-period {
		t.Errorf("defined count: got %d, want %d", got, len(closes)-period)
	}
}

func TestRSIFlatMarket(t *testing.T) {
	closes := []float64{100, 100, 100, 100, 100, 100, 100, 100}
	values, err := NewRSI(5).Calculate(candlesFromCloses(closes))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	for i, v := range values {
		if !v.Valid {
			continue
		}
		if v.Float64 != 50 {
			t.Errorf("index %d: flat market RSI is %v, want 50", i, v.Float64)
		}
	}
	if DefinedCount(values) == 0 {
		t.Fatal("expected defined RSI values")
	}
}

func TestRSIAllGains(t *testing.T) {
	closes := []float64{100, 101, 102, 103, 104, 105, 106, 107}
	values, err := NewRSI(5).Calculate(candlesFromCloses(closes))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	for i, v := range values {
		if v.Valid && v.Float64 != 100 {
			t.Errorf("index %d: got %v, want 100 for monotonic gains", i, v.Float64)
		}
	}
}

func TestRSIAllLosses(t *testing.T) {
	closes := []float64{107, 106, 105, 104, 103, 102, 101, 100}
	values, err := NewRSI(5).Calculate(candlesFromCloses(closes))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	for i, v := range values {
		if v.Valid && v.Float64 != 0 {
			t.Errorf("index %d: got %v, want 0 for monotonic losses", i, v.Float64)
		}
	}
}

func TestRSIBounds(t *testing.T) {
	closes := []float64{50, 53, 48, 55, 47, 60, 42, 58, 49, 52, 51, 56, 44, 50, 53}
	values, err := NewRSI(5).Calculate(candlesFromCloses(closes))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	for i, v := range values {
		if v.Valid && (v.Float64 < 0 || v.Float64 > 100) {
			t.Errorf("index %d: RSI %v outside [0, 100]", i, v.Float64)
		}
	}
}

func TestRSIShortSeries(t *testing.T) {
	values, err := NewRSI(14).Calculate(candlesFromCloses([]float64{1, 2, 3}))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if DefinedCount(values) != 0 {
		t.Error("expected no defined points when the series cannot cover period+1 closes")
	}
}

func TestRSIInvalidPeriod(t *testing.T) {
	_, err := NewRSI(0).Calculate(candlesFromCloses([]float64{1, 2, 3}))
	if !errors.Is(err, xerrors.ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}

func TestRSIEmptySeries(t *testing.T) {
	_, err := NewRSI(14).Calculate(nil)
	if !errors.Is(err, xerrors.ErrInsufficientData) {
		t.Errorf("got %v, want ErrInsufficientData", err)
	}
}
