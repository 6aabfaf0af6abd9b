package wrapper

import "github.com/boxvm/boxvm/pkg/jtype"

// Double wraps a double. Like Float, never cached.
type Double struct {
	value float64
}

func DoubleValueOf(d float64) *Double {
	return &Double{value: d}
}

func (d *Double) Kind() jtype.Kind { return jtype.Double }

func (d *Double) Value() jtype.Value { return jtype.DoubleOf(d.value) }

func (d *Double) String() string { return jtype.Format(d.Value()) }

func (d *Double) ByteValue() int8 { return numericValue(d.Value(), jtype.Byte).Byte() }

func (d *Double) ShortValue() int16 { return numericValue(d.Value(), jtype.Short).Short() }

func (d *Double) IntValue() int32 { return numericValue(d.Value(), jtype.Int).Int() }

func (d *Double) LongValue() int64 { return numericValue(d.Value(), jtype.Long).Long() }

func (d *Double) FloatValue() float32 { return float32(d.value) }

func (d *Double) DoubleValue() float64 { return d.value }
