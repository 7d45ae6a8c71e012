package indicators

import (
	"context"
	"errors"
	"testing"

	xerrors "marketmetrics/internal/errors"
)

func TestEngineCalculateAll(t *testing.T) {
	candles := candlesFromCloses([]float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19})

	engine := NewEngine(4)
	engine.Register(NewSMA(3))
	engine.Register(NewEMA(3))
	engine.Register(NewRSI(5))
	engine.RegisterMulti(NewBollingerBands(5, 2.0))

	res, err := engine.CalculateAll(context.Background(), candles)
	if err != nil {
		t.Fatalf("CalculateAll: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected indicator errors: %v", res.Errors)
	}
	if len(res.Single) != 3 {
		t.Errorf("got %d single results, want 3", len(res.Single))
	}
	if len(res.Multi) != 1 {
		t.Errorf("got %d multi results, want 1", len(res.Multi))
	}

	for name, values := range res.Single {
		if len(values) != len(candles) {
			t.Errorf("%s: got %d values, want %d", name, len(values), len(candles))
		}
	}
	for name, series := range res.Multi {
		for sub, values := range series {
			if len(values) != len(candles) {
				t.Errorf("%s/%s: got %d values, want %d", name, sub, len(values), len(candles))
			}
		}
	}
}

func TestEngineMatchesDirectCalculation(t *testing.T) {
	candles := candlesFromCloses([]float64{10, 12, 11, 13, 15, 14, 16, 18, 17, 19})
	sma := NewSMA(4)

	direct, err := sma.Calculate(candles)
	if err != nil {
		t.Fatalf("direct: %v", err)
	}

	engine := NewEngine(2)
	engine.Register(sma)
	res, err := engine.CalculateAll(context.Background(), candles)
	if err != nil {
		t.Fatalf("CalculateAll: %v", err)
	}

	pooled := res.Single[sma.Name()]
	if len(pooled) != len(direct) {
		t.Fatalf("length mismatch: %d vs %d", len(pooled), len(direct))
	}
	for i := range direct {
		if pooled[i] != direct[i] {
			t.Errorf("index %d: engine %+v, direct %+v", i, pooled[i], direct[i])
		}
	}
}

func TestEngineCollectsErrors(t *testing.T) {
	candles := candlesFromCloses([]float64{10, 11, 12, 13, 14})

	engine := NewEngine(2)
	engine.Register(NewSMA(3))
	engine.Register(NewSMA(0)) // invalid, should land in Errors

	res, err := engine.CalculateAll(context.Background(), candles)
	if err != nil {
		t.Fatalf("CalculateAll: %v", err)
	}
	if len(res.Single) != 1 {
		t.Errorf("got %d successful results, want 1", len(res.Single))
	}
	bad, ok := res.Errors["SMA_0"]
	if !ok {
		t.Fatal("expected an error entry for the invalid indicator")
	}
	if !errors.Is(bad, xerrors.ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", bad)
	}
}

func TestEngineContextCancellation(t *testing.T) {
	candles := candlesFromCloses([]float64{10, 11, 12, 13, 14})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine(2)
	engine.Register(NewSMA(3))

	if _, err := engine.CalculateAll(ctx, candles); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestEngineCalculateByName(t *testing.T) {
	candles := candlesFromCloses([]float64{10, 11, 12, 13, 14})

	engine := NewEngine(2)
	engine.Register(NewSMA(3))

	values, err := engine.Calculate(context.Background(), "SMA_3", candles)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if DefinedCount(values) != 3 {
		t.Errorf("defined count: got %d, want 3", DefinedCount(values))
	}

	if _, err := engine.Calculate(context.Background(), "SMA_99", candles); err == nil {
		t.Error("expected an error for an unregistered indicator")
	}
}

func TestEngineRegistered(t *testing.T) {
	engine := NewEngine(1)
	engine.Register(NewSMA(3))
	engine.RegisterMulti(NewMACD(12, 26, 9))

	names := engine.Registered()
	if len(names) != 2 {
		t.Fatalf("got %d registered names, want 2", len(names))
	}
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["SMA_3"] || !found["MACD_12_26_9"] {
		t.Errorf("unexpected registered set: %v", names)
	}
}
