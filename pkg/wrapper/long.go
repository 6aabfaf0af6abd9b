package wrapper

import (
	"math"

	"github.com/boxvm/boxvm/pkg/jtype"
)

const (
	LongMinValue int64 = math.MinInt64
	LongMaxValue int64 = math.MaxInt64
)

// Long wraps a long. Values -128 through 127 are cached.
type Long struct {
	value int64
}

var longCache [256]*Long

func init() {
	for i := range longCache {
		longCache[i] = &Long{value: int64(i - 128)}
	}
}

func LongValueOf(n int64) *Long {
	if n >= -128 && n <= 127 {
		return longCache[int(n)+128]
	}
	return &Long{value: n}
}

func (n *Long) Kind() jtype.Kind { return jtype.Long }

func (n *Long) Value() jtype.Value { return jtype.LongOf(n.value) }

func (n *Long) String() string { return jtype.Format(n.Value()) }

func (n *Long) ByteValue() int8 { return int8(n.value) }

func (n *Long) ShortValue() int16 { return int16(n.value) }

func (n *Long) IntValue() int32 { return int32(n.value) }

func (n *Long) LongValue() int64 { return n.value }

func (n *Long) FloatValue() float32 { return float32(n.value) }

func (n *Long) DoubleValue() float64 { return float64(n.value) }
