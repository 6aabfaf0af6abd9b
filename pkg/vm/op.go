package vm

import (
	"fmt"

	"github.com/boxvm/boxvm/pkg/jtype"
)

// Op is one instruction word. The low byte is the opcode, the remaining
// bits carry the operand: a constant pool index, a local slot, a branch
// target (a word index into the code), or a packed conversion descriptor.
type Op uint32

// Opcode is the low byte of an instruction word.
type Opcode uint8

const (
	OpInvalid Opcode = iota

	OpConst     // push constant pool entry arg
	OpConstNull // push the null reference
	OpLoad      // push local slot arg
	OpStore     // pop into local slot arg
	OpPop       // discard the top of stack
	OpDup       // duplicate the top of stack

	OpAdd // binary arithmetic on two promoted operands
	OpSub
	OpMul
	OpDiv
	OpRem
	OpNeg
	OpNot // boolean negation

	OpCmpEq // numeric comparison, pushes a boolean
	OpCmpNe
	OpCmpLt
	OpCmpLe
	OpCmpGt
	OpCmpGe
	OpRefEq // reference identity comparison
	OpRefNe

	OpJump        // unconditional branch to word index arg
	OpJumpIfFalse // pop a boolean, branch when false

	OpTableSwitch  // arg indexes a *TableSwitch constant
	OpLookupSwitch // arg indexes a *LookupSwitch constant

	OpBox     // pop a primitive, push its wrapper; arg is the Site
	OpUnbox   // pop a wrapper, push its primitive; arg is the Site
	OpConvert // primitive conversion; arg packs Site and kinds

	OpConcat // pop two values, push their string concatenation

	OpCall       // invoke method arg, arguments on the stack
	OpCallNative // invoke the *NativeRef at constant pool entry arg

	OpReturn      // return with no value
	OpReturnValue // pop the return value and return it
)

var opcodeNames = map[Opcode]string{
	OpConst:        "const",
	OpConstNull:    "constnull",
	OpLoad:         "load",
	OpStore:        "store",
	OpPop:          "pop",
	OpDup:          "dup",
	OpAdd:          "add",
	OpSub:          "sub",
	OpMul:          "mul",
	OpDiv:          "div",
	OpRem:          "rem",
	OpNeg:          "neg",
	OpNot:          "not",
	OpCmpEq:        "cmpeq",
	OpCmpNe:        "cmpne",
	OpCmpLt:        "cmplt",
	OpCmpLe:        "cmple",
	OpCmpGt:        "cmpgt",
	OpCmpGe:        "cmpge",
	OpRefEq:        "refeq",
	OpRefNe:        "refne",
	OpJump:         "jump",
	OpJumpIfFalse:  "jumpiffalse",
	OpTableSwitch:  "tableswitch",
	OpLookupSwitch: "lookupswitch",
	OpBox:          "box",
	OpUnbox:        "unbox",
	OpConvert:      "convert",
	OpConcat:       "concat",
	OpCall:         "call",
	OpCallNative:   "callnative",
	OpReturn:       "return",
	OpReturnValue:  "returnvalue",
}

func (c Opcode) String() string {
	if s, ok := opcodeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("opcode(%d)", uint8(c))
}

// With attaches an operand to an opcode, producing an instruction word.
func (c Opcode) With(arg int) Op {
	return Op(c) | Op(arg)<<8
}

// Word returns the bare instruction for opcodes that take no operand.
func (c Opcode) Word() Op {
	return Op(c)
}

func (o Op) Code() Opcode { return Opcode(o & 0xff) }

func (o Op) Arg() int { return int(o >> 8) }

func (o Op) String() string {
	c := o.Code()
	switch c {
	case OpConstNull, OpPop, OpDup, OpAdd, OpSub, OpMul, OpDiv, OpRem, OpNeg, OpNot,
		OpCmpEq, OpCmpNe, OpCmpLt, OpCmpLe, OpCmpGt, OpCmpGe, OpRefEq, OpRefNe,
		OpConcat, OpReturn, OpReturnValue:
		return c.String()
	case OpBox, OpUnbox:
		return fmt.Sprintf("%s %s", c, Site(o.Arg()))
	case OpConvert:
		site, from, to := DecodeConvert(o.Arg())
		return fmt.Sprintf("convert %s->%s %s", from, to, site)
	default:
		return fmt.Sprintf("%s %d", c, o.Arg())
	}
}

// EncodeConvert packs a conversion site and the source and target kinds
// into an operand. Kinds fit four bits each, the site takes the rest.
func EncodeConvert(site Site, from, to jtype.Kind) int {
	return int(site)<<8 | int(from)<<4 | int(to)
}

// DecodeConvert unpacks an OpConvert operand.
func DecodeConvert(arg int) (Site, jtype.Kind, jtype.Kind) {
	return Site(arg >> 8), jtype.Kind(arg >> 4 & 0xf), jtype.Kind(arg & 0xf)
}
