// Package errors provides the error taxonomy for indicator computations.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors. All indicator failures wrap one of these so
// callers can branch with errors.Is and decide to skip or abort; no
// computation has side effects to roll back.
var (
	// ErrInvalidParameter indicates a window, multiplier or window pair
	// outside its valid range. Raised before any computation starts.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientData indicates an empty input series. A non-empty
	// series that is merely shorter than an indicator's warm-up is not an
	// error; it yields a result with zero defined points.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateRange indicates a retracement range whose high equals
	// its low, from which no meaningful levels can be derived.
	ErrDegenerateRange = errors.New("degenerate price range")

	// ErrSeriesMismatch indicates two indicator series that are not
	// aligned to the same candles.
	ErrSeriesMismatch = errors.New("series length mismatch")
)

// ParameterError reports which parameter was rejected and why. It wraps
// ErrInvalidParameter so errors.Is(err, ErrInvalidParameter) holds.
type ParameterError struct {
	Name   string
	Value  interface{}
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s (%v): %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// NewParameterError creates a new ParameterError.
func NewParameterError(name string, value interface{}, reason string) *ParameterError {
	return &ParameterError{Name: name, Value: value, Reason: reason}
}

// FetchError reports a failure while retrieving data from the market-data
// provider.
type FetchError struct {
	Symbol    string
	Operation string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error [%s] %s: %v", e.Symbol, e.Operation, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(symbol, operation string, err error) *FetchError {
	return &FetchError{Symbol: symbol, Operation: operation, Err: err}
}
