package jtype

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivisionByZero is returned by integral Div and Rem with a zero
// divisor. Floating division by zero yields an infinity or NaN instead.
var ErrDivisionByZero = errors.New("/ by zero")

// Binary arithmetic is defined on operands that already share one of the
// four promoted kinds (int, long, float, double). The compiler inserts the
// promoting conversions, so a kind mismatch here is a bug, not user error.

func Add(a, b Value) (Value, error) {
	if err := checkPromoted(a, b); err != nil {
		return Value{}, err
	}
	switch a.kind {
	case Int:
		return IntOf(a.Int() + b.Int()), nil
	case Long:
		return LongOf(a.Long() + b.Long()), nil
	case Float:
		return FloatOf(a.Float() + b.Float()), nil
	default:
		return DoubleOf(a.f + b.f), nil
	}
}

func Sub(a, b Value) (Value, error) {
	if err := checkPromoted(a, b); err != nil {
		return Value{}, err
	}
	switch a.kind {
	case Int:
		return IntOf(a.Int() - b.Int()), nil
	case Long:
		return LongOf(a.Long() - b.Long()), nil
	case Float:
		return FloatOf(a.Float() - b.Float()), nil
	default:
		return DoubleOf(a.f - b.f), nil
	}
}

func Mul(a, b Value) (Value, error) {
	if err := checkPromoted(a, b); err != nil {
		return Value{}, err
	}
	switch a.kind {
	case Int:
		return IntOf(a.Int() * b.Int()), nil
	case Long:
		return LongOf(a.Long() * b.Long()), nil
	case Float:
		return FloatOf(a.Float() * b.Float()), nil
	default:
		return DoubleOf(a.f * b.f), nil
	}
}

func Div(a, b Value) (Value, error) {
	if err := checkPromoted(a, b); err != nil {
		return Value{}, err
	}
	switch a.kind {
	case Int:
		if b.Int() == 0 {
			return Value{}, ErrDivisionByZero
		}
		return IntOf(a.Int() / b.Int()), nil
	case Long:
		if b.Long() == 0 {
			return Value{}, ErrDivisionByZero
		}
		return LongOf(a.Long() / b.Long()), nil
	case Float:
		return FloatOf(a.Float() / b.Float()), nil
	default:
		return DoubleOf(a.f / b.f), nil
	}
}

func Rem(a, b Value) (Value, error) {
	if err := checkPromoted(a, b); err != nil {
		return Value{}, err
	}
	switch a.kind {
	case Int:
		if b.Int() == 0 {
			return Value{}, ErrDivisionByZero
		}
		return IntOf(a.Int() % b.Int()), nil
	case Long:
		if b.Long() == 0 {
			return Value{}, ErrDivisionByZero
		}
		return LongOf(a.Long() % b.Long()), nil
	case Float:
		return FloatOf(float32(math.Mod(float64(a.Float()), float64(b.Float())))), nil
	default:
		return DoubleOf(math.Mod(a.f, b.f)), nil
	}
}

func Neg(v Value) (Value, error) {
	switch v.kind {
	case Int:
		return IntOf(-v.Int()), nil
	case Long:
		return LongOf(-v.Long()), nil
	case Float:
		return FloatOf(-v.Float()), nil
	case Double:
		return DoubleOf(-v.f), nil
	}
	return Value{}, fmt.Errorf("neg: operand kind %s not promoted", v.kind)
}

// Compare orders two values of the same numeric kind. It returns -1, 0 or
// 1, with ok false when the operands are unordered (either side NaN), in
// which case every relational operator is false.
func Compare(a, b Value) (c int, ok bool) {
	if a.kind != b.kind || !a.kind.IsNumeric() {
		return 0, false
	}
	if a.kind.IsFloating() {
		x, y := a.f, b.f
		if a.kind == Float {
			x, y = float64(a.Float()), float64(b.Float())
		}
		switch {
		case math.IsNaN(x) || math.IsNaN(y):
			return 0, false
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	}
	switch {
	case a.i < b.i:
		return -1, true
	case a.i > b.i:
		return 1, true
	}
	return 0, true
}

func checkPromoted(a, b Value) error {
	if a.kind != b.kind {
		return fmt.Errorf("arith: operand kinds %s and %s not promoted to a common kind", a.kind, b.kind)
	}
	switch a.kind {
	case Int, Long, Float, Double:
		return nil
	}
	return fmt.Errorf("arith: operand kind %s not promoted", a.kind)
}
