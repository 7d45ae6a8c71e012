package indicators

// Value is one indicator observation, aligned index-for-index to the input
// candles. Valid is false during an indicator's warm-up, so callers can
// tell "no value yet" from "value is zero". Warm-up gaps are never encoded
// as zero or NaN.
type Value struct {
	Float64 float64
	Valid   bool
}

// NewValue returns a defined Value.
func NewValue(v float64) Value {
	return Value{Float64: v, Valid: true}
}

// DefinedCount returns the number of defined points in a series.
func DefinedCount(values []Value) int {
	n := 0
	for _, v := range values {
		if v.Valid {
			n++
		}
	}
	return n
}

// FirstDefined returns the index of the first defined point, or -1 when
// the series has no defined points.
func FirstDefined(values []Value) int {
	for i, v := range values {
		if v.Valid {
			return i
		}
	}
	return -1
}
