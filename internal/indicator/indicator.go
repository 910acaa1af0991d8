// Package indicator provides technical indicator calculations over close
// price sequences.
//
// All functions are pure: they take an ordered []float64 of closes, never
// mutate it, and return a full series aligned index-for-index with the
// input. Entries inside an indicator's warm-up window are an explicit
// undefined Value — callers must branch on Defined instead of comparing
// a placeholder number.
package indicator

// Value is a single indicator output. The zero Value is undefined.
type Value struct {
	V       float64
	Defined bool
}

// Def wraps a defined indicator value.
func Def(v float64) Value {
	return Value{V: v, Defined: true}
}

// Series is an indicator output sequence, same length as its input.
type Series []Value

// Last returns the final value of the series, or an undefined Value for
// an empty series.
func (s Series) Last() Value {
	if len(s) == 0 {
		return Value{}
	}
	return s[len(s)-1]
}

// At returns the value at index i, or an undefined Value when i is out
// of range.
func (s Series) At(i int) Value {
	if i < 0 || i >= len(s) {
		return Value{}
	}
	return s[i]
}
