package vm

import "fmt"

// Frame represents a stack frame for method execution.
type Frame struct {
	Method       *Method
	LocalVars    []Value
	OperandStack []Value
	SP           int
	PC           int
}

// NewFrame creates a new Frame for the given method, with the arguments
// already copied into the first local slots.
func NewFrame(m *Method, args []Value) *Frame {
	f := &Frame{
		Method:       m,
		LocalVars:    make([]Value, m.MaxLocals),
		OperandStack: make([]Value, m.MaxStack),
	}
	copy(f.LocalVars, args)
	return f
}

// Push pushes a value onto the operand stack.
func (f *Frame) Push(v Value) {
	if f.SP >= len(f.OperandStack) {
		panic(fmt.Sprintf("%s: operand stack overflow: SP=%d, max=%d", f.Method.Name, f.SP, len(f.OperandStack)))
	}
	f.OperandStack[f.SP] = v
	f.SP++
}

// Pop pops a value from the operand stack.
func (f *Frame) Pop() Value {
	if f.SP <= 0 {
		panic(fmt.Sprintf("%s: operand stack underflow: SP=0", f.Method.Name))
	}
	f.SP--
	return f.OperandStack[f.SP]
}

// GetLocal returns the value at the given local variable slot.
func (f *Frame) GetLocal(slot int) Value {
	if slot < 0 || slot >= len(f.LocalVars) {
		panic(fmt.Sprintf("%s: local variable slot out of range: slot=%d, max=%d", f.Method.Name, slot, len(f.LocalVars)))
	}
	return f.LocalVars[slot]
}

// SetLocal sets the value at the given local variable slot.
func (f *Frame) SetLocal(slot int, v Value) {
	if slot < 0 || slot >= len(f.LocalVars) {
		panic(fmt.Sprintf("%s: local variable slot out of range: slot=%d, max=%d", f.Method.Name, slot, len(f.LocalVars)))
	}
	f.LocalVars[slot] = v
}

// Const fetches a constant pool entry of the frame's method.
func (f *Frame) Const(idx int) (Const, error) {
	if idx < 0 || idx >= len(f.Method.Consts) {
		return nil, fmt.Errorf("%s: invalid constant pool index %d", f.Method.Name, idx)
	}
	return f.Method.Consts[idx], nil
}
