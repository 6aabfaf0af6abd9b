package wrapper

import "github.com/boxvm/boxvm/pkg/jtype"

const (
	ShortMinValue int16 = -32768
	ShortMaxValue int16 = 32767
)

// Short wraps a short. Values -128 through 127 are cached.
type Short struct {
	value int16
}

var shortCache [256]*Short

func init() {
	for i := range shortCache {
		shortCache[i] = &Short{value: int16(i - 128)}
	}
}

func ShortValueOf(s int16) *Short {
	if s >= -128 && s <= 127 {
		return shortCache[int(s)+128]
	}
	return &Short{value: s}
}

func (s *Short) Kind() jtype.Kind { return jtype.Short }

func (s *Short) Value() jtype.Value { return jtype.ShortOf(s.value) }

func (s *Short) String() string { return jtype.Format(s.Value()) }

func (s *Short) ByteValue() int8 { return int8(s.value) }

func (s *Short) ShortValue() int16 { return s.value }

func (s *Short) IntValue() int32 { return int32(s.value) }

func (s *Short) LongValue() int64 { return int64(s.value) }

func (s *Short) FloatValue() float32 { return float32(s.value) }

func (s *Short) DoubleValue() float64 { return float64(s.value) }
