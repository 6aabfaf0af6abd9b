package vm

import "fmt"

// Const is a constant pool entry. The pool holds jtype.Value primitives,
// string literals, switch tables and native references.
type Const interface{}

// TableSwitch is a dense switch table: case keys run from Lo upward, one
// branch target per key. Targets and Default are word indexes.
type TableSwitch struct {
	Lo      int32
	Targets []int
	Default int
}

// LookupSwitch is a sparse switch table with explicit sorted keys.
type LookupSwitch struct {
	Keys    []int32
	Targets []int
	Default int
}

// NativeRef names a built-in invoked with OpCallNative. Argc counts the
// stack arguments, the receiver included for instance methods.
type NativeRef struct {
	Name string
	Argc int
}

// Method is one compiled method body. Arguments arrive in the first
// NumParams local slots. Returns records whether the method produces a
// value the caller must push.
type Method struct {
	Name      string
	NumParams int
	Returns   bool
	MaxLocals int
	MaxStack  int
	Code      []Op
	Consts    []Const
}

// Program is a compiled compilation unit: a named set of methods, one of
// which is the entry point.
type Program struct {
	Name    string
	Entry   string
	Methods []*Method
}

// Method looks a method up by name.
func (p *Program) Method(name string) (*Method, error) {
	for _, m := range p.Methods {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("program %s: no method %s", p.Name, name)
}

// MethodIndex returns the index OpCall uses for a method name.
func (p *Program) MethodIndex(name string) (int, error) {
	for i, m := range p.Methods {
		if m.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("program %s: no method %s", p.Name, name)
}
