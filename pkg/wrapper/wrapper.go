// Package wrapper implements the eight type wrapper classes: heap objects
// that hold a single primitive value. Instances are obtained through the
// ValueOf constructors, which consult the per-class caches, so == on two
// wrappers is reference identity, not value equality.
package wrapper

import (
	"fmt"

	"github.com/boxvm/boxvm/pkg/jtype"
)

// Object is the interface all eight wrapper classes satisfy.
type Object interface {
	// Kind is the primitive kind the object wraps.
	Kind() jtype.Kind
	// Value returns the wrapped primitive.
	Value() jtype.Value
	// String renders the wrapped primitive in toString form.
	String() string
}

// Number is satisfied by the six numeric wrapper classes. The xxxValue
// methods apply the matching primitive conversion, narrowing included.
type Number interface {
	Object
	ByteValue() int8
	ShortValue() int16
	IntValue() int32
	LongValue() int64
	FloatValue() float32
	DoubleValue() float64
}

// ClassName returns the wrapper class name for a primitive kind.
func ClassName(k jtype.Kind) string {
	switch k {
	case jtype.Boolean:
		return "Boolean"
	case jtype.Char:
		return "Character"
	case jtype.Byte:
		return "Byte"
	case jtype.Short:
		return "Short"
	case jtype.Int:
		return "Integer"
	case jtype.Long:
		return "Long"
	case jtype.Float:
		return "Float"
	case jtype.Double:
		return "Double"
	}
	return ""
}

// KindOf is the inverse of ClassName. The boolean result reports whether
// the name is a wrapper class.
func KindOf(className string) (jtype.Kind, bool) {
	switch className {
	case "Boolean":
		return jtype.Boolean, true
	case "Character":
		return jtype.Char, true
	case "Byte":
		return jtype.Byte, true
	case "Short":
		return jtype.Short, true
	case "Integer":
		return jtype.Int, true
	case "Long":
		return jtype.Long, true
	case "Float":
		return jtype.Float, true
	case "Double":
		return jtype.Double, true
	}
	return jtype.Invalid, false
}

// Box wraps a primitive in the wrapper class for its kind, going through
// the class's ValueOf so cached instances are shared.
func Box(v jtype.Value) (Object, error) {
	switch v.Kind() {
	case jtype.Boolean:
		return BooleanValueOf(v.Bool()), nil
	case jtype.Char:
		return CharacterValueOf(v.Char()), nil
	case jtype.Byte:
		return ByteValueOf(v.Byte()), nil
	case jtype.Short:
		return ShortValueOf(v.Short()), nil
	case jtype.Int:
		return IntegerValueOf(v.Int()), nil
	case jtype.Long:
		return LongValueOf(v.Long()), nil
	case jtype.Float:
		return FloatValueOf(v.Float()), nil
	case jtype.Double:
		return DoubleValueOf(v.Double()), nil
	}
	return nil, fmt.Errorf("box: no wrapper class for kind %s", v.Kind())
}

// Unbox extracts the wrapped primitive. The nil check belongs to the
// caller: unboxing a null reference is a runtime error, not a wrapper
// concern.
func Unbox(obj Object) jtype.Value {
	return obj.Value()
}

// Equals is wrapper equals semantics: true only when both objects are the
// same wrapper class and wrap the same bits. Unlike ==, NaN equals NaN
// and 0.0 does not equal -0.0.
func Equals(a, b Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return jtype.Same(a.Value(), b.Value())
}

func numericValue(v jtype.Value, to jtype.Kind) jtype.Value {
	c, err := jtype.Convert(v, to)
	if err != nil {
		// Unreachable: every Number kind converts to every numeric kind.
		panic(err)
	}
	return c
}
