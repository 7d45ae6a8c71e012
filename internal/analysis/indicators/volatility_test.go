package indicators

import (
	"errors"
	"testing"

	xerrors "marketmetrics/internal/errors"
)

func TestBollingerBandsSymmetry(t *testing.T) {
	closes := []float64{20, 21, 22, 21, 20, 19, 20, 22, 24, 23, 22, 21}
	period, mult := 5, 2.0
	bands, err := NewBollingerBands(period, mult).Calculate(candlesFromCloses(closes))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	middle := bands[BandMiddle]
	upper := bands[BandUpper]
	lower := bands[BandLower]

	checked := 0
	for i := range middle {
		if !middle[i].Valid {
			if upper[i].Valid || lower[i].Valid {
				t.Errorf("index %d: bands defined without middle", i)
			}
			continue
		}
		m, u, l := middle[i].Float64, upper[i].Float64, lower[i].Float64
		if l > m || m > u {
			t.Errorf("index %d: ordering violated: %v <= %v <= %v", i, l, m, u)
		}
		// Upper and lower sit symmetrically around the middle.
		if !approxEqual(u-m, m-l) {
			t.Errorf("index %d: asymmetric bands: up %v, down %v", i, u-m, m-l)
		}
		checked++
	}
	if checked != len(closes)-period+1 {
		t.Errorf("checked %d windows, want %d", checked, len(closes)-period+1)
	}
}

func TestBollingerBandsWidthScalesWithMultiplier(t *testing.T) {
	closes := []float64{20, 21, 22, 21, 20, 19, 20, 22, 24, 23}

	narrow, err := NewBollingerBands(5, 1.0).Calculate(candlesFromCloses(closes))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	wide, err := NewBollingerBands(5, 3.0).Calculate(candlesFromCloses(closes))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	for i := range closes {
		if !narrow[BandUpper][i].Valid {
			continue
		}
		nw := narrow[BandUpper][i].Float64 - narrow[BandLower][i].Float64
		ww := wide[BandUpper][i].Float64 - wide[BandLower][i].Float64
		if !approxEqual(ww, 3*nw) {
			t.Errorf("index %d: width with k=3 is %v, want triple of k=1 width %v", i, ww, nw)
		}
	}
}

func TestBollingerBandsConstantSeries(t *testing.T) {
	closes := []float64{50, 50, 50, 50, 50, 50}
	bands, err := NewBollingerBands(3, 2.0).Calculate(candlesFromCloses(closes))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	for i := 2; i < len(closes); i++ {
		if !approxEqual(bands[BandUpper][i].Float64, 50) ||
			!approxEqual(bands[BandLower][i].Float64, 50) {
			t.Errorf("index %d: bands should collapse onto the middle for constant closes", i)
		}
		if bands[BandPercentB][i].Valid {
			t.Errorf("index %d: percent B should be undefined when the band width is zero", i)
		}
	}
}

func TestBollingerBandsPercentB(t *testing.T) {
	closes := []float64{10, 12, 14, 16, 18, 20}
	bands, err := NewBollingerBands(5, 2.0).Calculate(candlesFromCloses(closes))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	for i := range closes {
		pb := bands[BandPercentB][i]
		if !pb.Valid {
			continue
		}
		width := bands[BandUpper][i].Float64 - bands[BandLower][i].Float64
		want := (closes[i] - bands[BandLower][i].Float64) / width
		if !approxEqual(pb.Float64, want) {
			t.Errorf("index %d: percent B %v, want %v", i, pb.Float64, want)
		}
	}
}

func TestBollingerBandsInvalidParameters(t *testing.T) {
	candles := candlesFromCloses([]float64{1, 2, 3})
	tests := []struct {
		name   string
		period int
		mult   float64
	}{
		{"period below two", 1, 2.0},
		{"zero multiplier", 20, 0},
		{"negative multiplier", 20, -1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBollingerBands(tt.period, tt.mult).Calculate(candles)
			if !errors.Is(err, xerrors.ErrInvalidParameter) {
				t.Errorf("got %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestBollingerBandsEmptySeries(t *testing.T) {
	_, err := NewBollingerBands(20, 2.0).Calculate(nil)
	if !errors.Is(err, xerrors.ErrInsufficientData) {
		t.Errorf("got %v, want ErrInsufficientData", err)
	}
}

func TestVolumeSMA(t *testing.T) {
	candles := candlesFromCloses([]float64{1, 2, 3, 4, 5})
	for i := range candles {
		candles[i].Volume = int64((i + 1) * 100)
	}
	values, err := NewVolumeSMA(3).Calculate(candles)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	want := []float64{200, 300, 400}
	for i, w := range want {
		v := values[i+2]
		if !v.Valid || !approxEqual(v.Float64, w) {
			t.Errorf("index %d: got %+v, want %v", i+2, v, w)
		}
	}
}
