package jtype

import (
	"fmt"
	"math"
)

// Convert applies a primitive conversion and returns the value as the
// target kind. Widening keeps the numeric value. Narrowing between
// integral kinds keeps only the low-order bits of the two's-complement
// representation, so magnitude and sign can both change. Floating to
// integral truncates toward zero, maps NaN to zero and clamps infinities
// and out-of-range values to the target's extremes. Boolean converts to
// nothing and nothing converts to boolean.
func Convert(v Value, to Kind) (Value, error) {
	from := v.kind
	if from == to {
		return v, nil
	}
	if !from.IsNumeric() || !to.IsNumeric() {
		return Value{}, fmt.Errorf("convert: no conversion from %s to %s", from, to)
	}

	switch to {
	case Byte, Short, Char, Int:
		n := v.i
		if from.IsFloating() {
			n = int64(truncToInt32(v.f))
		}
		switch to {
		case Byte:
			return ByteOf(int8(n)), nil
		case Short:
			return ShortOf(int16(n)), nil
		case Char:
			return CharOf(uint16(n)), nil
		default:
			return IntOf(int32(n)), nil
		}
	case Long:
		if from.IsFloating() {
			return LongOf(truncToInt64(v.f)), nil
		}
		return LongOf(v.i), nil
	case Float:
		if from.IsFloating() {
			return FloatOf(float32(v.f)), nil
		}
		return FloatOf(float32(v.i)), nil
	case Double:
		if from.IsFloating() {
			return DoubleOf(v.f), nil
		}
		return DoubleOf(float64(v.i)), nil
	}
	return Value{}, fmt.Errorf("convert: no conversion from %s to %s", from, to)
}

// truncToInt32 is the d2i rule: NaN becomes zero, values beyond the int
// range clamp to the nearest extreme, everything else truncates toward
// zero.
func truncToInt32(d float64) int32 {
	switch {
	case math.IsNaN(d):
		return 0
	case d >= math.MaxInt32:
		return math.MaxInt32
	case d <= math.MinInt32:
		return math.MinInt32
	}
	return int32(d)
}

// truncToInt64 is the d2l rule.
func truncToInt64(d float64) int64 {
	switch {
	case math.IsNaN(d):
		return 0
	case d >= math.MaxInt64:
		return math.MaxInt64
	case d <= math.MinInt64:
		return math.MinInt64
	}
	return int64(d)
}

// FitsConstant reports whether the int constant n is representable in the
// target kind without change of value. Assignment of an int constant to a
// narrower variable is allowed exactly when this holds.
func FitsConstant(n int64, to Kind) bool {
	switch to {
	case Byte:
		return n >= math.MinInt8 && n <= math.MaxInt8
	case Short:
		return n >= math.MinInt16 && n <= math.MaxInt16
	case Char:
		return n >= 0 && n <= math.MaxUint16
	case Int:
		return n >= math.MinInt32 && n <= math.MaxInt32
	case Long:
		return true
	}
	return false
}
