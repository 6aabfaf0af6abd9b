package vm

import (
	"github.com/boxvm/boxvm/pkg/jtype"
	"github.com/boxvm/boxvm/pkg/wrapper"
)

// ValueType discriminates the three shapes a stack or local slot can hold.
type ValueType uint8

const (
	TypePrim ValueType = iota
	TypeRef
	TypeNull
)

// Value is a runtime value: a primitive, a reference to a heap object
// (a wrapper instance or a string), or the null reference.
type Value struct {
	Type ValueType
	Prim jtype.Value
	Ref  interface{}
}

func PrimValue(p jtype.Value) Value {
	return Value{Type: TypePrim, Prim: p}
}

func RefValue(r interface{}) Value {
	if r == nil {
		return NullValue()
	}
	return Value{Type: TypeRef, Ref: r}
}

func NullValue() Value {
	return Value{Type: TypeNull}
}

func (v Value) IsNull() bool { return v.Type == TypeNull }

func (v Value) IsPrim() bool { return v.Type == TypePrim }

// Stringify renders a value the way string conversion does: primitives in
// println form, wrappers through toString, null as the text "null".
func Stringify(v Value) string {
	switch v.Type {
	case TypePrim:
		return jtype.Format(v.Prim)
	case TypeNull:
		return "null"
	}
	switch r := v.Ref.(type) {
	case string:
		return r
	case wrapper.Object:
		return r.String()
	}
	return "object"
}
