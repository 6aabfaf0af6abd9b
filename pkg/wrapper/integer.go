package wrapper

import (
	"math"

	"github.com/boxvm/boxvm/pkg/jtype"
)

const (
	IntegerMinValue int32 = math.MinInt32
	IntegerMaxValue int32 = math.MaxInt32
)

// Integer wraps an int. Values -128 through 127 come from the cache, so
// boxing a small int twice yields the same object and == compares true;
// outside the cached range every boxing allocates.
type Integer struct {
	value int32
}

var integerCache [256]*Integer

func init() {
	for i := range integerCache {
		integerCache[i] = &Integer{value: int32(i - 128)}
	}
}

func IntegerValueOf(n int32) *Integer {
	if n >= -128 && n <= 127 {
		return integerCache[int(n)+128]
	}
	return &Integer{value: n}
}

func (n *Integer) Kind() jtype.Kind { return jtype.Int }

func (n *Integer) Value() jtype.Value { return jtype.IntOf(n.value) }

func (n *Integer) String() string { return jtype.Format(n.Value()) }

func (n *Integer) ByteValue() int8 { return int8(n.value) }

func (n *Integer) ShortValue() int16 { return int16(n.value) }

func (n *Integer) IntValue() int32 { return n.value }

func (n *Integer) LongValue() int64 { return int64(n.value) }

func (n *Integer) FloatValue() float32 { return float32(n.value) }

func (n *Integer) DoubleValue() float64 { return float64(n.value) }
