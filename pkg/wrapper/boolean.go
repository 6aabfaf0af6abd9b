package wrapper

import "github.com/boxvm/boxvm/pkg/jtype"

// Boolean wraps a boolean. Only the two interned instances below exist
// when construction goes through BooleanValueOf.
type Boolean struct {
	value bool
}

var (
	booleanTrue  = &Boolean{value: true}
	booleanFalse = &Boolean{value: false}
)

func BooleanValueOf(b bool) *Boolean {
	if b {
		return booleanTrue
	}
	return booleanFalse
}

func (b *Boolean) BooleanValue() bool { return b.value }

func (b *Boolean) Kind() jtype.Kind { return jtype.Boolean }

func (b *Boolean) Value() jtype.Value { return jtype.BoolOf(b.value) }

func (b *Boolean) String() string { return jtype.Format(b.Value()) }
