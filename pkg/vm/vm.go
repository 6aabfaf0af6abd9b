package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/boxvm/boxvm/pkg/jtype"
	"github.com/boxvm/boxvm/pkg/wrapper"
)

// maxFrameDepth is the maximum number of nested method calls.
const maxFrameDepth = 1024

// VM is the virtual machine that executes a compiled program.
type VM struct {
	Program    *Program
	Stdout     io.Writer
	Sink       EventSink
	frameDepth int
}

// NewVM creates a new VM for the given program, writing to standard
// output and dropping conversion events.
func NewVM(p *Program) *VM {
	return &VM{
		Program: p,
		Stdout:  os.Stdout,
		Sink:    NopSink{},
	}
}

// Execute finds and executes the program's entry method.
func (vm *VM) Execute() error {
	entry := vm.Program.Entry
	if entry == "" {
		entry = "main"
	}
	method, err := vm.Program.Method(entry)
	if err != nil {
		return err
	}
	if method.NumParams != 0 {
		return fmt.Errorf("entry method %s must take no parameters", entry)
	}
	_, err = vm.executeMethod(method, nil)
	return err
}

// executeMethod executes a method with the given arguments and returns its return value.
func (vm *VM) executeMethod(method *Method, args []Value) (Value, error) {
	if len(args) != method.NumParams {
		return Value{}, fmt.Errorf("%s: got %d arguments, want %d", method.Name, len(args), method.NumParams)
	}

	vm.frameDepth++
	defer func() { vm.frameDepth-- }()
	if vm.frameDepth > maxFrameDepth {
		return Value{}, NewStackOverflowError()
	}

	frame := NewFrame(method, args)

	for frame.PC < len(method.Code) {
		op := method.Code[frame.PC]
		frame.PC++

		retVal, hasReturn, err := vm.executeInstruction(frame, op)
		if err != nil {
			return Value{}, err
		}
		if hasReturn {
			return retVal, nil
		}
	}

	// Fell off the end of the method (implicit return for void methods)
	return Value{}, nil
}

// executeCall handles the call instruction.
func (vm *VM) executeCall(frame *Frame, idx int) (Value, bool, error) {
	if idx < 0 || idx >= len(vm.Program.Methods) {
		return Value{}, false, fmt.Errorf("call: invalid method index %d", idx)
	}
	method := vm.Program.Methods[idx]

	args := make([]Value, method.NumParams)
	for i := method.NumParams - 1; i >= 0; i-- {
		args[i] = frame.Pop()
	}

	retVal, err := vm.executeMethod(method, args)
	if err != nil {
		return Value{}, false, err
	}
	if method.Returns {
		frame.Push(retVal)
	}
	return Value{}, false, nil
}

// executeCallNative handles the callnative instruction.
func (vm *VM) executeCallNative(frame *Frame, idx int) (Value, bool, error) {
	entry, err := frame.Const(idx)
	if err != nil {
		return Value{}, false, fmt.Errorf("callnative: %w", err)
	}
	ref, ok := entry.(*NativeRef)
	if !ok {
		return Value{}, false, fmt.Errorf("callnative: constant %d is %T, not a native reference", idx, entry)
	}

	args := make([]Value, ref.Argc)
	for i := ref.Argc - 1; i >= 0; i-- {
		args[i] = frame.Pop()
	}

	switch ref.Name {
	case "println":
		vm.out().Println(args...)

	case "print":
		if len(args) != 1 {
			return Value{}, false, fmt.Errorf("callnative: print takes one argument")
		}
		vm.out().Print(args[0])

	case "String.valueOf":
		if len(args) != 1 {
			return Value{}, false, fmt.Errorf("callnative: String.valueOf takes one argument")
		}
		frame.Push(RefValue(Stringify(args[0])))

	case "equals":
		if len(args) != 2 {
			return Value{}, false, fmt.Errorf("callnative: equals takes a receiver and one argument")
		}
		obj, err := receiverObject(ref.Name, args)
		if err != nil {
			return Value{}, false, err
		}
		other, _ := args[1].Ref.(wrapper.Object)
		frame.Push(PrimValue(jtype.BoolOf(args[1].Type != TypeNull && wrapper.Equals(obj, other))))

	case "Boolean.valueOf", "Character.valueOf", "Byte.valueOf", "Short.valueOf",
		"Integer.valueOf", "Long.valueOf", "Float.valueOf", "Double.valueOf":
		obj, err := executeValueOf(ref.Name, args)
		if err != nil {
			return Value{}, false, err
		}
		frame.Push(RefValue(obj))

	case "booleanValue", "charValue", "byteValue", "shortValue",
		"intValue", "longValue", "floatValue", "doubleValue":
		v, err := executeXxxValue(ref.Name, args)
		if err != nil {
			return Value{}, false, err
		}
		frame.Push(PrimValue(v))

	default:
		return Value{}, false, fmt.Errorf("callnative: unsupported native %s", ref.Name)
	}

	return Value{}, false, nil
}

// executeValueOf dispatches the static valueOf factories. The argument's
// kind must match the wrapper class exactly; the compiler converts
// beforehand.
func executeValueOf(name string, args []Value) (wrapper.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("callnative: %s takes one argument", name)
	}
	v := args[0]
	if !v.IsPrim() {
		return nil, fmt.Errorf("callnative: %s: argument is not a primitive", name)
	}
	p := v.Prim
	switch name {
	case "Boolean.valueOf":
		if p.Kind() != jtype.Boolean {
			break
		}
		return wrapper.BooleanValueOf(p.Bool()), nil
	case "Character.valueOf":
		if p.Kind() != jtype.Char {
			break
		}
		return wrapper.CharacterValueOf(p.Char()), nil
	case "Byte.valueOf":
		if p.Kind() != jtype.Byte {
			break
		}
		return wrapper.ByteValueOf(p.Byte()), nil
	case "Short.valueOf":
		if p.Kind() != jtype.Short {
			break
		}
		return wrapper.ShortValueOf(p.Short()), nil
	case "Integer.valueOf":
		if p.Kind() != jtype.Int {
			break
		}
		return wrapper.IntegerValueOf(p.Int()), nil
	case "Long.valueOf":
		if p.Kind() != jtype.Long {
			break
		}
		return wrapper.LongValueOf(p.Long()), nil
	case "Float.valueOf":
		if p.Kind() != jtype.Float {
			break
		}
		return wrapper.FloatValueOf(p.Float()), nil
	case "Double.valueOf":
		if p.Kind() != jtype.Double {
			break
		}
		return wrapper.DoubleValueOf(p.Double()), nil
	}
	return nil, fmt.Errorf("callnative: %s: argument kind %s does not match", name, p.Kind())
}

// executeXxxValue dispatches the instance accessor methods. The numeric
// accessors work on any Number; booleanValue and charValue require their
// own class.
func executeXxxValue(name string, args []Value) (jtype.Value, error) {
	obj, err := receiverObject(name, args)
	if err != nil {
		return jtype.Value{}, err
	}

	switch name {
	case "booleanValue":
		b, ok := obj.(*wrapper.Boolean)
		if !ok {
			return jtype.Value{}, fmt.Errorf("callnative: booleanValue: receiver is not a Boolean")
		}
		return jtype.BoolOf(b.BooleanValue()), nil
	case "charValue":
		c, ok := obj.(*wrapper.Character)
		if !ok {
			return jtype.Value{}, fmt.Errorf("callnative: charValue: receiver is not a Character")
		}
		return jtype.CharOf(c.CharValue()), nil
	}

	n, ok := obj.(wrapper.Number)
	if !ok {
		return jtype.Value{}, fmt.Errorf("callnative: %s: receiver is not a numeric wrapper", name)
	}
	switch name {
	case "byteValue":
		return jtype.ByteOf(n.ByteValue()), nil
	case "shortValue":
		return jtype.ShortOf(n.ShortValue()), nil
	case "intValue":
		return jtype.IntOf(n.IntValue()), nil
	case "longValue":
		return jtype.LongOf(n.LongValue()), nil
	case "floatValue":
		return jtype.FloatOf(n.FloatValue()), nil
	case "doubleValue":
		return jtype.DoubleOf(n.DoubleValue()), nil
	}
	return jtype.Value{}, fmt.Errorf("callnative: unsupported accessor %s", name)
}

// receiverObject validates the receiver argument of an instance native.
func receiverObject(name string, args []Value) (wrapper.Object, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("callnative: %s: missing receiver", name)
	}
	recv := args[0]
	if recv.Type == TypeNull {
		return nil, NewNullPointerException(fmt.Sprintf("cannot invoke %s on null reference", name))
	}
	obj, ok := recv.Ref.(wrapper.Object)
	if !ok {
		return nil, fmt.Errorf("callnative: %s: receiver is not a wrapper object", name)
	}
	return obj, nil
}

// out returns the print stream the console natives write to.
func (vm *VM) out() *PrintStream {
	return &PrintStream{Writer: vm.Stdout}
}

// emit forwards a conversion event to the configured sink.
func (vm *VM) emit(e Event) {
	if vm.Sink != nil {
		vm.Sink.Emit(e)
	}
}
