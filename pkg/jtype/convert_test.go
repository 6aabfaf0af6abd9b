package jtype

import (
	"math"
	"testing"
)

func TestConvertNarrowingKeepsLowBits(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		to   Kind
		want Value
	}{
		{"500 to byte wraps to -12", IntOf(500), Byte, ByteOf(-12)},
		{"256 to byte is 0", IntOf(256), Byte, ByteOf(0)},
		{"130 to byte is -126", IntOf(130), Byte, ByteOf(-126)},
		{"-1 to char is 65535", IntOf(-1), Char, CharOf(65535)},
		{"65 to char is A", IntOf(65), Char, CharOf('A')},
		{"70000 to short wraps", IntOf(70000), Short, ShortOf(4464)},
		{"long to int drops high word", LongOf(1 << 35), Int, IntOf(0)},
		{"long to int keeps low word", LongOf((1 << 32) + 7), Int, IntOf(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.v, tt.to)
			if err != nil {
				t.Fatalf("Convert(%v, %s): %v", tt.v, tt.to, err)
			}
			if !Same(got, tt.want) {
				t.Errorf("Convert(%s %d, %s) = %d, want %d", tt.v.Kind(), tt.v.AsLong(), tt.to, got.AsLong(), tt.want.AsLong())
			}
		})
	}
}

func TestConvertWidening(t *testing.T) {
	got, err := Convert(ByteOf(-12), Int)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != Int || got.Int() != -12 {
		t.Errorf("byte -12 widened = %s %d, want int -12", got.Kind(), got.Int())
	}

	got, err = Convert(CharOf('A'), Int)
	if err != nil {
		t.Fatal(err)
	}
	if got.Int() != 65 {
		t.Errorf("char 'A' widened = %d, want 65", got.Int())
	}

	got, err = Convert(IntOf(100), Double)
	if err != nil {
		t.Fatal(err)
	}
	if got.Double() != 100.0 {
		t.Errorf("int 100 widened = %v, want 100.0", got.Double())
	}

	got, err = Convert(LongOf(math.MaxInt64), Float)
	if err != nil {
		t.Fatal(err)
	}
	if got.Float() != float32(math.MaxInt64) {
		t.Errorf("long max widened = %v", got.Float())
	}
}

func TestConvertFloatingToIntegral(t *testing.T) {
	tests := []struct {
		name string
		d    float64
		to   Kind
		want int64
	}{
		{"truncates toward zero", 97.97, Int, 97},
		{"negative truncates toward zero", -97.97, Int, -97},
		{"NaN is zero", math.NaN(), Int, 0},
		{"positive infinity clamps", math.Inf(1), Int, math.MaxInt32},
		{"negative infinity clamps", math.Inf(-1), Int, math.MinInt32},
		{"overflow clamps", 1e12, Int, math.MaxInt32},
		{"long overflow clamps", 1e20, Long, math.MaxInt64},
		{"in range to long", 3.9, Long, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(DoubleOf(tt.d), tt.to)
			if err != nil {
				t.Fatal(err)
			}
			if got.AsLong() != tt.want {
				t.Errorf("Convert(%v, %s) = %d, want %d", tt.d, tt.to, got.AsLong(), tt.want)
			}
		})
	}
}

func TestConvertBooleanRejected(t *testing.T) {
	if _, err := Convert(BoolOf(true), Int); err == nil {
		t.Error("boolean to int: want error, got none")
	}
	if _, err := Convert(IntOf(1), Boolean); err == nil {
		t.Error("int to boolean: want error, got none")
	}
}

func TestFitsConstant(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		to   Kind
		want bool
	}{
		{"100 fits byte", 100, Byte, true},
		{"127 fits byte", 127, Byte, true},
		{"128 does not fit byte", 128, Byte, false},
		{"-128 fits byte", -128, Byte, true},
		{"500 does not fit byte", 500, Byte, false},
		{"500 fits short", 500, Short, true},
		{"-1 does not fit char", -1, Char, false},
		{"65535 fits char", 65535, Char, true},
		{"anything fits long", math.MaxInt64, Long, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitsConstant(tt.n, tt.to); got != tt.want {
				t.Errorf("FitsConstant(%d, %s) = %v, want %v", tt.n, tt.to, got, tt.want)
			}
		})
	}
}
