package jtype

import (
	"math"
	"strconv"
	"strings"
)

// Format renders a value the way println renders the matching primitive:
// integral kinds in decimal, char as the character itself, float and
// double in Java's toString form.
func Format(v Value) string {
	switch v.kind {
	case Boolean:
		if v.Bool() {
			return "true"
		}
		return "false"
	case Char:
		return string(rune(v.Char()))
	case Byte, Short, Int, Long:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return FormatFloat(v.Float())
	case Double:
		return FormatDouble(v.f)
	}
	return "invalid"
}

// FormatDouble renders d in Java's Double.toString form: plain decimal
// with at least one fraction digit when the magnitude is in [1e-3, 1e7),
// otherwise computerized scientific notation with a bare exponent.
func FormatDouble(d float64) string {
	switch {
	case math.IsNaN(d):
		return "NaN"
	case math.IsInf(d, 1):
		return "Infinity"
	case math.IsInf(d, -1):
		return "-Infinity"
	}
	return floatingString(d, 64)
}

// FormatFloat renders f in Java's Float.toString form. The shortest
// round-trip digits are computed at 32-bit precision.
func FormatFloat(f float32) string {
	d := float64(f)
	switch {
	case math.IsNaN(d):
		return "NaN"
	case math.IsInf(d, 1):
		return "Infinity"
	case math.IsInf(d, -1):
		return "-Infinity"
	}
	return floatingString(d, 32)
}

func floatingString(d float64, bits int) string {
	abs := math.Abs(d)
	if d == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(d, 'f', -1, bits)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(d, 'E', -1, bits)
	mant, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(strings.TrimPrefix(strings.TrimPrefix(exp, "+"), "-"), "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}
	return mant + "E" + exp
}
