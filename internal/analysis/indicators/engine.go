// Package indicators provides technical indicator calculations over OHLCV
// candle series. All indicators are pure functions of their inputs: they
// read the shared candle slice and write only to their own output, so
// independent calculations can run in parallel without coordination.
package indicators

import (
	"context"
	"fmt"
	"sync"

	"marketmetrics/internal/models"
)

// Indicator is a single-series indicator. The returned values are aligned
// index-for-index to the input candles, undefined during warm-up.
type Indicator interface {
	Name() string
	Calculate(candles []models.Candle) ([]Value, error)
	Period() int
}

// MultiValueIndicator is an indicator that produces several named series,
// such as MACD or Bollinger Bands.
type MultiValueIndicator interface {
	Name() string
	Calculate(candles []models.Candle) (map[string][]Value, error)
	Period() int
}

// Engine computes registered indicators in parallel using a bounded worker
// pool.
type Engine struct {
	workers     int
	indicators  map[string]Indicator
	multiIndics map[string]MultiValueIndicator
	mu          sync.RWMutex
}

// NewEngine creates a new indicator engine with the specified number of
// workers.
func NewEngine(workers int) *Engine {
	if workers <= 0 {
		workers = 4
	}
	return &Engine{
		workers:     workers,
		indicators:  make(map[string]Indicator),
		multiIndics: make(map[string]MultiValueIndicator),
	}
}

// Register registers a single-series indicator.
func (e *Engine) Register(ind Indicator) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.indicators[ind.Name()] = ind
}

// RegisterMulti registers a multi-series indicator.
func (e *Engine) RegisterMulti(ind MultiValueIndicator) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.multiIndics[ind.Name()] = ind
}

// Result holds every series produced by one run over a candle slice.
type Result struct {
	Single map[string][]Value
	Multi  map[string]map[string][]Value
	Errors map[string]error
}

// CalculateAll runs every registered indicator in parallel. Individual
// indicator failures do not abort the run; they are collected in
// Result.Errors keyed by indicator name.
func (e *Engine) CalculateAll(ctx context.Context, candles []models.Candle) (*Result, error) {
	e.mu.RLock()
	singles := make([]Indicator, 0, len(e.indicators))
	for _, ind := range e.indicators {
		singles = append(singles, ind)
	}
	multis := make([]MultiValueIndicator, 0, len(e.multiIndics))
	for _, ind := range e.multiIndics {
		multis = append(multis, ind)
	}
	e.mu.RUnlock()

	res := &Result{
		Single: make(map[string][]Value),
		Multi:  make(map[string]map[string][]Value),
		Errors: make(map[string]error),
	}
	var mu sync.Mutex
	var wg sync.WaitGroup

	singleWork := make(chan Indicator, len(singles))
	multiWork := make(chan MultiValueIndicator, len(multis))

	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ind := range singleWork {
				select {
				case <-ctx.Done():
					return
				default:
				}
				values, err := ind.Calculate(candles)
				mu.Lock()
				if err != nil {
					res.Errors[ind.Name()] = err
				} else {
					res.Single[ind.Name()] = values
				}
				mu.Unlock()
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ind := range multiWork {
				select {
				case <-ctx.Done():
					return
				default:
				}
				values, err := ind.Calculate(candles)
				mu.Lock()
				if err != nil {
					res.Errors[ind.Name()] = err
				} else {
					res.Multi[ind.Name()] = values
				}
				mu.Unlock()
			}
		}()
	}

	for _, ind := range singles {
		singleWork <- ind
	}
	close(singleWork)
	for _, ind := range multis {
		multiWork <- ind
	}
	close(multiWork)

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Calculate runs one registered single-series indicator by name.
func (e *Engine) Calculate(ctx context.Context, name string, candles []models.Candle) ([]Value, error) {
	e.mu.RLock()
	ind, ok := e.indicators[name]
	e.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("indicator %s not registered", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ind.Calculate(candles)
}

// CalculateMulti runs one registered multi-series indicator by name.
func (e *Engine) CalculateMulti(ctx context.Context, name string, candles []models.Candle) (map[string][]Value, error) {
	e.mu.RLock()
	ind, ok := e.multiIndics[name]
	e.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("multi-value indicator %s not registered", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ind.Calculate(candles)
}

// Registered returns the names of all registered indicators.
func (e *Engine) Registered() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.indicators)+len(e.multiIndics))
	for name := range e.indicators {
		names = append(names, name)
	}
	for name := range e.multiIndics {
		names = append(names, name)
	}
	return names
}
