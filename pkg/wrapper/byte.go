package wrapper

import "github.com/boxvm/boxvm/pkg/jtype"

const (
	ByteMinValue int8 = -128
	ByteMaxValue int8 = 127
)

// Byte wraps a byte. Every possible value is cached, so ByteValueOf never
// allocates.
type Byte struct {
	value int8
}

var byteCache [256]*Byte

func init() {
	for i := range byteCache {
		byteCache[i] = &Byte{value: int8(i - 128)}
	}
}

func ByteValueOf(b int8) *Byte {
	return byteCache[int(b)+128]
}

func (b *Byte) Kind() jtype.Kind { return jtype.Byte }

func (b *Byte) Value() jtype.Value { return jtype.ByteOf(b.value) }

func (b *Byte) String() string { return jtype.Format(b.Value()) }

func (b *Byte) ByteValue() int8 { return b.value }

func (b *Byte) ShortValue() int16 { return int16(b.value) }

func (b *Byte) IntValue() int32 { return int32(b.value) }

func (b *Byte) LongValue() int64 { return int64(b.value) }

func (b *Byte) FloatValue() float32 { return float32(b.value) }

func (b *Byte) DoubleValue() float64 { return float64(b.value) }
