package wrapper

import "github.com/boxvm/boxvm/pkg/jtype"

// Float wraps a float. Floating wrappers are never cached; every boxing
// allocates a fresh object.
type Float struct {
	value float32
}

func FloatValueOf(f float32) *Float {
	return &Float{value: f}
}

func (f *Float) Kind() jtype.Kind { return jtype.Float }

func (f *Float) Value() jtype.Value { return jtype.FloatOf(f.value) }

func (f *Float) String() string { return jtype.Format(f.Value()) }

func (f *Float) ByteValue() int8 { return numericValue(f.Value(), jtype.Byte).Byte() }

func (f *Float) ShortValue() int16 { return numericValue(f.Value(), jtype.Short).Short() }

func (f *Float) IntValue() int32 { return numericValue(f.Value(), jtype.Int).Int() }

func (f *Float) LongValue() int64 { return numericValue(f.Value(), jtype.Long).Long() }

func (f *Float) FloatValue() float32 { return f.value }

func (f *Float) DoubleValue() float64 { return float64(f.value) }
