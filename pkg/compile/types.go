package compile

import (
	"fmt"

	"github.com/boxvm/boxvm/pkg/jtype"
	"github.com/boxvm/boxvm/pkg/lang"
	"github.com/boxvm/boxvm/pkg/wrapper"
)

// Class says which family a dialect type belongs to.
type Class int

const (
	ClassInvalid Class = iota
	ClassPrim
	ClassWrapper
	ClassString
	ClassNull
	ClassVoid
)

// Type is a resolved dialect type: a primitive kind, a wrapper class, a
// String, the type of the null literal, or void. Types are comparable.
type Type struct {
	Class Class
	Kind  jtype.Kind // set for ClassPrim and ClassWrapper
}

var (
	StringType = Type{Class: ClassString}
	NullType   = Type{Class: ClassNull}
	VoidType   = Type{Class: ClassVoid}
)

func PrimType(k jtype.Kind) Type    { return Type{Class: ClassPrim, Kind: k} }
func WrapperType(k jtype.Kind) Type { return Type{Class: ClassWrapper, Kind: k} }

func (t Type) IsPrim() bool    { return t.Class == ClassPrim }
func (t Type) IsWrapper() bool { return t.Class == ClassWrapper }

func (t Type) String() string {
	switch t.Class {
	case ClassPrim:
		return t.Kind.String()
	case ClassWrapper:
		return wrapper.ClassName(t.Kind)
	case ClassString:
		return "String"
	case ClassNull:
		return "<null>"
	case ClassVoid:
		return "void"
	}
	return "invalid"
}

var primKinds = map[string]jtype.Kind{
	"boolean": jtype.Boolean,
	"char":    jtype.Char,
	"byte":    jtype.Byte,
	"short":   jtype.Short,
	"int":     jtype.Int,
	"long":    jtype.Long,
	"float":   jtype.Float,
	"double":  jtype.Double,
}

// resolveType maps a source type name to a resolved Type.
func resolveType(name lang.TypeName) (Type, error) {
	if k, ok := primKinds[name.Name]; ok {
		return PrimType(k), nil
	}
	if k, ok := wrapper.KindOf(name.Name); ok {
		return WrapperType(k), nil
	}
	switch name.Name {
	case "String":
		return StringType, nil
	case "void":
		return VoidType, nil
	}
	return Type{}, fmt.Errorf("line %d: cannot find symbol: class %s", name.Line, name.Name)
}

// numericOperand returns the value kind of a numeric-context operand: a
// numeric primitive as is, a numeric wrapper as its unboxed kind.
func numericOperand(t Type) (jtype.Kind, bool) {
	if (t.IsPrim() || t.IsWrapper()) && t.Kind.IsNumeric() {
		return t.Kind, true
	}
	return jtype.Invalid, false
}

// booleanOperand reports whether t is boolean or Boolean.
func booleanOperand(t Type) bool {
	return (t.IsPrim() || t.IsWrapper()) && t.Kind == jtype.Boolean
}

// isRefType reports whether t is a reference type.
func isRefType(t Type) bool {
	return t.IsWrapper() || t == StringType || t == NullType
}
