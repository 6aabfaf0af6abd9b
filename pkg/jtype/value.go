package jtype

import "math"

// Value is a tagged primitive value. Integral kinds (and boolean and char)
// live in the i field, float and double in the f field. A float value is
// stored already rounded to 32-bit precision.
type Value struct {
	kind Kind
	i    int64
	f    float64
}

func BoolOf(b bool) Value {
	var i int64
	if b {
		i = 1
	}
	return Value{kind: Boolean, i: i}
}

func CharOf(c uint16) Value {
	return Value{kind: Char, i: int64(c)}
}

func ByteOf(b int8) Value {
	return Value{kind: Byte, i: int64(b)}
}

func ShortOf(s int16) Value {
	return Value{kind: Short, i: int64(s)}
}

func IntOf(n int32) Value {
	return Value{kind: Int, i: int64(n)}
}

func LongOf(n int64) Value {
	return Value{kind: Long, i: n}
}

func FloatOf(f float32) Value {
	return Value{kind: Float, f: float64(f)}
}

func DoubleOf(d float64) Value {
	return Value{kind: Double, f: d}
}

func (v Value) Kind() Kind { return v.kind }

// The accessors below assume the value holds the matching kind; callers
// check Kind first or arrive here through a typed instruction.

func (v Value) Bool() bool     { return v.i != 0 }
func (v Value) Char() uint16   { return uint16(v.i) }
func (v Value) Byte() int8     { return int8(v.i) }
func (v Value) Short() int16   { return int16(v.i) }
func (v Value) Int() int32     { return int32(v.i) }
func (v Value) Long() int64    { return v.i }
func (v Value) Float() float32 { return float32(v.f) }
func (v Value) Double() float64 {
	return v.f
}

// AsLong reads any integral value (boolean excluded) sign-extended to 64
// bits. Char reads as its unsigned code unit.
func (v Value) AsLong() int64 { return v.i }

// AsDouble reads any numeric value as a float64.
func (v Value) AsDouble() float64 {
	if v.kind.IsFloating() {
		return v.f
	}
	return float64(v.i)
}

// IsZero reports whether a numeric value is zero, used for division guards.
func (v Value) IsZero() bool {
	if v.kind.IsFloating() {
		return v.f == 0
	}
	return v.i == 0
}

// Same reports whether two values have the same kind and the same bits.
// For floating kinds NaN is same as NaN and +0.0 differs from -0.0, which
// is the equality the identity demonstrations want.
func Same(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	if a.kind.IsFloating() {
		return math.Float64bits(a.f) == math.Float64bits(b.f)
	}
	return a.i == b.i
}
