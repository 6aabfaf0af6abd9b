package vm

import (
	"errors"
	"fmt"

	"github.com/boxvm/boxvm/pkg/jtype"
	"github.com/boxvm/boxvm/pkg/wrapper"
)

// executeInstruction executes a single instruction word.
// Returns (returnValue, hasReturn, error).
func (vm *VM) executeInstruction(frame *Frame, op Op) (Value, bool, error) {
	switch op.Code() {

	// --- Constants and slots ---
	case OpConst:
		entry, err := frame.Const(op.Arg())
		if err != nil {
			return Value{}, false, fmt.Errorf("const: %w", err)
		}
		switch c := entry.(type) {
		case jtype.Value:
			frame.Push(PrimValue(c))
		case string:
			frame.Push(RefValue(c))
		default:
			return Value{}, false, fmt.Errorf("const: unsupported constant pool entry %T at index %d", entry, op.Arg())
		}

	case OpConstNull:
		frame.Push(NullValue())

	case OpLoad:
		frame.Push(frame.GetLocal(op.Arg()))

	case OpStore:
		frame.SetLocal(op.Arg(), frame.Pop())

	case OpPop:
		frame.Pop()

	case OpDup:
		v := frame.Pop()
		frame.Push(v)
		frame.Push(v)

	// --- Arithmetic ---
	case OpAdd, OpSub, OpMul, OpDiv, OpRem:
		return vm.executeArith(frame, op.Code())

	case OpNeg:
		v := frame.Pop()
		if !v.IsPrim() {
			return Value{}, false, fmt.Errorf("neg: operand is not a primitive")
		}
		res, err := jtype.Neg(v.Prim)
		if err != nil {
			return Value{}, false, fmt.Errorf("neg: %w", err)
		}
		frame.Push(PrimValue(res))

	case OpNot:
		v := frame.Pop()
		if !v.IsPrim() || v.Prim.Kind() != jtype.Boolean {
			return Value{}, false, fmt.Errorf("not: operand is not a boolean")
		}
		frame.Push(PrimValue(jtype.BoolOf(!v.Prim.Bool())))

	// --- Comparisons ---
	case OpCmpEq, OpCmpNe, OpCmpLt, OpCmpLe, OpCmpGt, OpCmpGe:
		return vm.executeCompare(frame, op.Code())

	case OpRefEq, OpRefNe:
		v2 := frame.Pop()
		v1 := frame.Pop()
		if v1.IsPrim() || v2.IsPrim() {
			return Value{}, false, fmt.Errorf("%s: operand is not a reference", op.Code())
		}
		eq := (v1.Type == TypeNull && v2.Type == TypeNull) ||
			(v1.Type == v2.Type && v1.Ref == v2.Ref)
		if op.Code() == OpRefNe {
			eq = !eq
		}
		frame.Push(PrimValue(jtype.BoolOf(eq)))

	// --- Branches ---
	case OpJump:
		frame.PC = op.Arg()

	case OpJumpIfFalse:
		v := frame.Pop()
		if !v.IsPrim() || v.Prim.Kind() != jtype.Boolean {
			return Value{}, false, fmt.Errorf("jumpiffalse: condition is not a boolean")
		}
		if !v.Prim.Bool() {
			frame.PC = op.Arg()
		}

	// --- Switches ---
	case OpTableSwitch:
		entry, err := frame.Const(op.Arg())
		if err != nil {
			return Value{}, false, fmt.Errorf("tableswitch: %w", err)
		}
		ts, ok := entry.(*TableSwitch)
		if !ok {
			return Value{}, false, fmt.Errorf("tableswitch: constant %d is %T, not a table", op.Arg(), entry)
		}
		key, err := switchKey(frame)
		if err != nil {
			return Value{}, false, err
		}
		idx := key - ts.Lo
		if idx >= 0 && int(idx) < len(ts.Targets) {
			frame.PC = ts.Targets[idx]
		} else {
			frame.PC = ts.Default
		}

	case OpLookupSwitch:
		entry, err := frame.Const(op.Arg())
		if err != nil {
			return Value{}, false, fmt.Errorf("lookupswitch: %w", err)
		}
		ls, ok := entry.(*LookupSwitch)
		if !ok {
			return Value{}, false, fmt.Errorf("lookupswitch: constant %d is %T, not a table", op.Arg(), entry)
		}
		key, err := switchKey(frame)
		if err != nil {
			return Value{}, false, err
		}
		frame.PC = ls.Default
		for i, k := range ls.Keys {
			if k == key {
				frame.PC = ls.Targets[i]
				break
			}
		}

	// --- Boxing and conversions ---
	case OpBox:
		v := frame.Pop()
		if !v.IsPrim() {
			return Value{}, false, fmt.Errorf("box: operand is not a primitive")
		}
		obj, err := wrapper.Box(v.Prim)
		if err != nil {
			return Value{}, false, fmt.Errorf("box: %w", err)
		}
		frame.Push(RefValue(obj))
		vm.emit(Event{
			Conv:  ConvBox,
			Site:  Site(op.Arg()),
			From:  v.Prim.Kind().String(),
			To:    wrapper.ClassName(v.Prim.Kind()),
			Value: v.Prim,
		})

	case OpUnbox:
		r := frame.Pop()
		if r.Type == TypeNull {
			return Value{}, false, NewNullPointerException("cannot unbox null reference")
		}
		obj, ok := r.Ref.(wrapper.Object)
		if !ok {
			return Value{}, false, fmt.Errorf("unbox: operand is not a wrapper object")
		}
		v := obj.Value()
		frame.Push(PrimValue(v))
		vm.emit(Event{
			Conv:  ConvUnbox,
			Site:  Site(op.Arg()),
			From:  wrapper.ClassName(v.Kind()),
			To:    v.Kind().String(),
			Value: v,
		})

	case OpConvert:
		site, from, to := DecodeConvert(op.Arg())
		v := frame.Pop()
		if !v.IsPrim() || v.Prim.Kind() != from {
			return Value{}, false, fmt.Errorf("convert: operand is not a %s", from)
		}
		c, err := jtype.Convert(v.Prim, to)
		if err != nil {
			return Value{}, false, fmt.Errorf("convert: %w", err)
		}
		frame.Push(PrimValue(c))
		conv := ConvNarrow
		if jtype.IsWidening(from, to) {
			conv = ConvWiden
		}
		vm.emit(Event{
			Conv:  conv,
			Site:  site,
			From:  from.String(),
			To:    to.String(),
			Value: c,
		})

	// --- String concatenation ---
	case OpConcat:
		v2 := frame.Pop()
		v1 := frame.Pop()
		frame.Push(RefValue(Stringify(v1) + Stringify(v2)))

	// --- Method invocation ---
	case OpCall:
		return vm.executeCall(frame, op.Arg())

	case OpCallNative:
		return vm.executeCallNative(frame, op.Arg())

	// --- Return ---
	case OpReturnValue:
		return frame.Pop(), true, nil

	case OpReturn:
		return Value{}, true, nil

	default:
		return Value{}, false, fmt.Errorf("unknown opcode: %d at pc %d", op.Code(), frame.PC-1)
	}

	return Value{}, false, nil
}

// executeArith handles the binary arithmetic instructions. Operands
// arrive already promoted to a shared kind; a mismatch is compiler error,
// not program behavior.
func (vm *VM) executeArith(frame *Frame, code Opcode) (Value, bool, error) {
	v2 := frame.Pop()
	v1 := frame.Pop()
	if !v1.IsPrim() || !v2.IsPrim() {
		return Value{}, false, fmt.Errorf("%s: operand is not a primitive", code)
	}

	var res jtype.Value
	var err error
	switch code {
	case OpAdd:
		res, err = jtype.Add(v1.Prim, v2.Prim)
	case OpSub:
		res, err = jtype.Sub(v1.Prim, v2.Prim)
	case OpMul:
		res, err = jtype.Mul(v1.Prim, v2.Prim)
	case OpDiv:
		res, err = jtype.Div(v1.Prim, v2.Prim)
	case OpRem:
		res, err = jtype.Rem(v1.Prim, v2.Prim)
	}
	if err != nil {
		if errors.Is(err, jtype.ErrDivisionByZero) {
			return Value{}, false, NewArithmeticException("/ by zero")
		}
		return Value{}, false, fmt.Errorf("%s: %w", code, err)
	}
	frame.Push(PrimValue(res))
	return Value{}, false, nil
}

// executeCompare handles the numeric comparison instructions. An
// unordered comparison (a NaN operand) is false for every operator
// except !=.
func (vm *VM) executeCompare(frame *Frame, code Opcode) (Value, bool, error) {
	v2 := frame.Pop()
	v1 := frame.Pop()
	if !v1.IsPrim() || !v2.IsPrim() {
		return Value{}, false, fmt.Errorf("%s: operand is not a primitive", code)
	}
	if v1.Prim.Kind() != v2.Prim.Kind() {
		return Value{}, false, fmt.Errorf("%s: operand kinds %s and %s differ", code, v1.Prim.Kind(), v2.Prim.Kind())
	}

	if v1.Prim.Kind() == jtype.Boolean {
		if code != OpCmpEq && code != OpCmpNe {
			return Value{}, false, fmt.Errorf("%s: booleans are not ordered", code)
		}
		res := v1.Prim.Bool() == v2.Prim.Bool()
		if code == OpCmpNe {
			res = !res
		}
		frame.Push(PrimValue(jtype.BoolOf(res)))
		return Value{}, false, nil
	}

	c, ok := jtype.Compare(v1.Prim, v2.Prim)
	var res bool
	switch code {
	case OpCmpEq:
		res = ok && c == 0
	case OpCmpNe:
		res = !ok || c != 0
	case OpCmpLt:
		res = ok && c < 0
	case OpCmpLe:
		res = ok && c <= 0
	case OpCmpGt:
		res = ok && c > 0
	case OpCmpGe:
		res = ok && c >= 0
	}
	frame.Push(PrimValue(jtype.BoolOf(res)))
	return Value{}, false, nil
}

// switchKey pops and validates a switch selector. Selectors are the
// int-compatible integral kinds; long is not a legal selector.
func switchKey(frame *Frame) (int32, error) {
	v := frame.Pop()
	if !v.IsPrim() || !v.Prim.Kind().IsIntegral() || v.Prim.Kind() == jtype.Long {
		return 0, fmt.Errorf("switch: selector is not an int-compatible primitive")
	}
	return int32(v.Prim.AsLong()), nil
}
