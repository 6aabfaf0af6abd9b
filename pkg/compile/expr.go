package compile

import (
	"fmt"
	"math"

	"github.com/boxvm/boxvm/pkg/jtype"
	"github.com/boxvm/boxvm/pkg/lang"
	"github.com/boxvm/boxvm/pkg/vm"
	"github.com/boxvm/boxvm/pkg/wrapper"
)

var binOps = map[lang.TokenKind]vm.Opcode{
	lang.TokPlus:    vm.OpAdd,
	lang.TokMinus:   vm.OpSub,
	lang.TokStar:    vm.OpMul,
	lang.TokSlash:   vm.OpDiv,
	lang.TokPercent: vm.OpRem,
	lang.TokLt:      vm.OpCmpLt,
	lang.TokLe:      vm.OpCmpLe,
	lang.TokGt:      vm.OpCmpGt,
	lang.TokGe:      vm.OpCmpGe,
	lang.TokEq:      vm.OpCmpEq,
	lang.TokNe:      vm.OpCmpNe,
}

// valueMethods are the instance accessors and the primitive kind each
// one returns.
var valueMethods = map[string]jtype.Kind{
	"booleanValue": jtype.Boolean,
	"charValue":    jtype.Char,
	"byteValue":    jtype.Byte,
	"shortValue":   jtype.Short,
	"intValue":     jtype.Int,
	"longValue":    jtype.Long,
	"floatValue":   jtype.Float,
	"doubleValue":  jtype.Double,
}

// compileExpr emits code leaving the expression's value on the stack
// and returns its static type.
func (fc *funcCompiler) compileExpr(e lang.Expr) (Type, error) {
	switch e := e.(type) {
	case *lang.Literal:
		return fc.compileLiteral(e)
	case *lang.Ident:
		l, err := fc.lookup(e.Name, e.Line)
		if err != nil {
			return Type{}, err
		}
		fc.emit(vm.OpLoad.With(l.slot), 1)
		return l.typ, nil
	case *lang.Unary:
		return fc.compileUnary(e)
	case *lang.Binary:
		return fc.compileBinary(e)
	case *lang.Call:
		return fc.compileCall(e)
	case *lang.StaticCall:
		return fc.compileStaticCall(e)
	case *lang.MethodCall:
		return fc.compileMethodCall(e)
	case *lang.PrintCall:
		return fc.compilePrint(e.Method, e.Args, e.Line)
	}
	return Type{}, fmt.Errorf("line %d: cannot compile %T", e.Pos(), e)
}

func (fc *funcCompiler) compileLiteral(e *lang.Literal) (Type, error) {
	switch e.Kind {
	case lang.LitInt:
		if e.Int < math.MinInt32 || e.Int > math.MaxInt32 {
			return Type{}, fmt.Errorf("line %d: integer number too large", e.Line)
		}
		fc.emitConst(jtype.IntOf(int32(e.Int)))
		return PrimType(jtype.Int), nil
	case lang.LitLong:
		fc.emitConst(jtype.LongOf(e.Int))
		return PrimType(jtype.Long), nil
	case lang.LitFloat:
		fc.emitConst(jtype.FloatOf(float32(e.Float)))
		return PrimType(jtype.Float), nil
	case lang.LitDouble:
		fc.emitConst(jtype.DoubleOf(e.Float))
		return PrimType(jtype.Double), nil
	case lang.LitChar:
		fc.emitConst(jtype.CharOf(uint16(e.Int)))
		return PrimType(jtype.Char), nil
	case lang.LitString:
		fc.emitConst(e.Str)
		return StringType, nil
	case lang.LitBool:
		fc.emitConst(jtype.BoolOf(e.Bool))
		return PrimType(jtype.Boolean), nil
	case lang.LitNull:
		fc.emit(vm.OpConstNull.Word(), 1)
		return NullType, nil
	}
	return Type{}, fmt.Errorf("line %d: unsupported literal", e.Line)
}

func (fc *funcCompiler) compileUnary(e *lang.Unary) (Type, error) {
	if e.Op == lang.TokNot {
		t, err := fc.compileExpr(e.X)
		if err != nil {
			return Type{}, err
		}
		switch t {
		case PrimType(jtype.Boolean):
		case WrapperType(jtype.Boolean):
			fc.emit(vm.OpUnbox.With(int(vm.SiteExpression)), 0)
		default:
			return Type{}, fmt.Errorf("line %d: bad operand type %s for unary operator %s", e.Line, t, e.Op)
		}
		fc.emit(vm.OpNot.Word(), 0)
		return PrimType(jtype.Boolean), nil
	}

	// A minus folds into a literal operand, which is what lets
	// -2147483648 through: the bare literal alone is out of range.
	if lit, ok := e.X.(*lang.Literal); ok {
		neg := *lit
		switch lit.Kind {
		case lang.LitInt, lang.LitLong:
			neg.Int = -lit.Int
			return fc.compileLiteral(&neg)
		case lang.LitFloat, lang.LitDouble:
			neg.Float = -lit.Float
			return fc.compileLiteral(&neg)
		}
	}

	t, err := fc.compileExpr(e.X)
	if err != nil {
		return Type{}, err
	}
	k, ok := numericOperand(t)
	if !ok {
		return Type{}, fmt.Errorf("line %d: bad operand type %s for unary operator %s", e.Line, t, e.Op)
	}
	promoted := jtype.PromoteUnary(k)
	fc.promoteOperand(t, promoted)
	fc.emit(vm.OpNeg.Word(), 0)
	return PrimType(promoted), nil
}

func (fc *funcCompiler) compileBinary(e *lang.Binary) (Type, error) {
	switch e.Op {
	case lang.TokEq, lang.TokNe:
		return fc.compileEquality(e)
	case lang.TokLt, lang.TokLe, lang.TokGt, lang.TokGe:
		return fc.compileRelational(e)
	}

	tx, err := fc.typeOf(e.X)
	if err != nil {
		return Type{}, err
	}
	ty, err := fc.typeOf(e.Y)
	if err != nil {
		return Type{}, err
	}

	// A + with a String operand is string concatenation; the other
	// operand is converted to its string form at runtime, without
	// unboxing.
	if e.Op == lang.TokPlus && (tx == StringType || ty == StringType) {
		if _, err := fc.compileExpr(e.X); err != nil {
			return Type{}, err
		}
		if _, err := fc.compileExpr(e.Y); err != nil {
			return Type{}, err
		}
		fc.emit(vm.OpConcat.Word(), -1)
		return StringType, nil
	}

	kx, okx := numericOperand(tx)
	ky, oky := numericOperand(ty)
	if !okx || !oky {
		return Type{}, fmt.Errorf("line %d: bad operand types for binary operator %s: %s and %s", e.Line, e.Op, tx, ty)
	}
	promoted := jtype.Promote(kx, ky)

	if _, err := fc.compileExpr(e.X); err != nil {
		return Type{}, err
	}
	fc.promoteOperand(tx, promoted)
	if _, err := fc.compileExpr(e.Y); err != nil {
		return Type{}, err
	}
	fc.promoteOperand(ty, promoted)
	fc.emit(binOps[e.Op].Word(), -1)
	return PrimType(promoted), nil
}

// compileEquality places == and !=. Two reference operands compare by
// identity without unboxing; a wrapper meeting a primitive is unboxed
// and compared numerically.
func (fc *funcCompiler) compileEquality(e *lang.Binary) (Type, error) {
	tx, err := fc.typeOf(e.X)
	if err != nil {
		return Type{}, err
	}
	ty, err := fc.typeOf(e.Y)
	if err != nil {
		return Type{}, err
	}

	switch {
	case isRefType(tx) && isRefType(ty):
		if err := comparableRefs(e.Line, tx, ty); err != nil {
			return Type{}, err
		}
		if _, err := fc.compileExpr(e.X); err != nil {
			return Type{}, err
		}
		if _, err := fc.compileExpr(e.Y); err != nil {
			return Type{}, err
		}
		op := vm.OpRefEq
		if e.Op == lang.TokNe {
			op = vm.OpRefNe
		}
		fc.emit(op.Word(), -1)

	case numericPair(tx, ty):
		kx, _ := numericOperand(tx)
		ky, _ := numericOperand(ty)
		promoted := jtype.Promote(kx, ky)
		if _, err := fc.compileExpr(e.X); err != nil {
			return Type{}, err
		}
		fc.promoteOperand(tx, promoted)
		if _, err := fc.compileExpr(e.Y); err != nil {
			return Type{}, err
		}
		fc.promoteOperand(ty, promoted)
		fc.emit(binOps[e.Op].Word(), -1)

	case booleanOperand(tx) && booleanOperand(ty):
		// at least one side is a primitive: the two-wrapper case was
		// the identity comparison above
		if _, err := fc.compileExpr(e.X); err != nil {
			return Type{}, err
		}
		if tx.IsWrapper() {
			fc.emit(vm.OpUnbox.With(int(vm.SiteExpression)), 0)
		}
		if _, err := fc.compileExpr(e.Y); err != nil {
			return Type{}, err
		}
		if ty.IsWrapper() {
			fc.emit(vm.OpUnbox.With(int(vm.SiteExpression)), 0)
		}
		fc.emit(binOps[e.Op].Word(), -1)

	default:
		return Type{}, fmt.Errorf("line %d: incomparable types: %s and %s", e.Line, tx, ty)
	}
	return PrimType(jtype.Boolean), nil
}

func (fc *funcCompiler) compileRelational(e *lang.Binary) (Type, error) {
	tx, err := fc.typeOf(e.X)
	if err != nil {
		return Type{}, err
	}
	ty, err := fc.typeOf(e.Y)
	if err != nil {
		return Type{}, err
	}
	kx, okx := numericOperand(tx)
	ky, oky := numericOperand(ty)
	if !okx || !oky {
		return Type{}, fmt.Errorf("line %d: bad operand types for binary operator %s: %s and %s", e.Line, e.Op, tx, ty)
	}
	promoted := jtype.Promote(kx, ky)
	if _, err := fc.compileExpr(e.X); err != nil {
		return Type{}, err
	}
	fc.promoteOperand(tx, promoted)
	if _, err := fc.compileExpr(e.Y); err != nil {
		return Type{}, err
	}
	fc.promoteOperand(ty, promoted)
	fc.emit(binOps[e.Op].Word(), -1)
	return PrimType(jtype.Boolean), nil
}

// promoteOperand takes the just-compiled operand of type t to the
// promoted kind: wrappers unbox, narrower kinds widen.
func (fc *funcCompiler) promoteOperand(t Type, promoted jtype.Kind) {
	if t.IsWrapper() {
		fc.emit(vm.OpUnbox.With(int(vm.SiteExpression)), 0)
	}
	if t.Kind != promoted {
		fc.emitConvert(vm.SiteExpression, t.Kind, promoted)
	}
}

// numericPair reports whether both operands take part in a numeric
// comparison: at least one primitive, nothing non-numeric.
func numericPair(tx, ty Type) bool {
	_, okx := numericOperand(tx)
	_, oky := numericOperand(ty)
	return okx && oky && (tx.IsPrim() || ty.IsPrim())
}

// comparableRefs rejects reference comparisons javac rejects: wrappers
// of different classes and wrapper against String. null compares with
// any reference.
func comparableRefs(line int, tx, ty Type) error {
	if tx == NullType || ty == NullType {
		return nil
	}
	if tx != ty {
		return fmt.Errorf("line %d: incomparable types: %s and %s", line, tx, ty)
	}
	return nil
}

func (fc *funcCompiler) compileCall(e *lang.Call) (Type, error) {
	info, ok := fc.c.methods[e.Name]
	if !ok {
		if e.Name == "println" || e.Name == "print" {
			return fc.compilePrint(e.Name, e.Args, e.Line)
		}
		return Type{}, fmt.Errorf("line %d: cannot find symbol: method %s", e.Line, e.Name)
	}
	if len(e.Args) != len(info.params) {
		return Type{}, fmt.Errorf("line %d: method %s cannot be applied: expected %d arguments, found %d",
			e.Line, e.Name, len(info.params), len(e.Args))
	}
	for i, a := range e.Args {
		if err := fc.compileAssignable(a, info.params[i], vm.SiteArgument); err != nil {
			return Type{}, err
		}
	}
	delta := -len(e.Args)
	if info.result != VoidType {
		delta++
	}
	fc.emit(vm.OpCall.With(info.index), delta)
	return info.result, nil
}

// compilePrint handles println and print, both the bare form and the
// System.out one. Arguments pass as they are: the stream renders any
// value, so no conversion is placed at this boundary.
func (fc *funcCompiler) compilePrint(method string, args []lang.Expr, line int) (Type, error) {
	if method == "print" && len(args) != 1 {
		return Type{}, fmt.Errorf("line %d: print expects one argument", line)
	}
	if len(args) > 1 {
		return Type{}, fmt.Errorf("line %d: %s expects at most one argument", line, method)
	}
	for _, a := range args {
		t, err := fc.compileExpr(a)
		if err != nil {
			return Type{}, err
		}
		if t == VoidType {
			return Type{}, fmt.Errorf("line %d: 'void' type not allowed here", a.Pos())
		}
	}
	fc.emit(vm.OpCallNative.With(fc.constIndex(&vm.NativeRef{Name: method, Argc: len(args)})), -len(args))
	return VoidType, nil
}

func (fc *funcCompiler) compileStaticCall(e *lang.StaticCall) (Type, error) {
	if e.Class == "String" {
		if e.Method != "valueOf" {
			return Type{}, fmt.Errorf("line %d: cannot find symbol: method String.%s", e.Line, e.Method)
		}
		if len(e.Args) != 1 {
			return Type{}, fmt.Errorf("line %d: String.valueOf expects one argument", e.Line)
		}
		t, err := fc.compileExpr(e.Args[0])
		if err != nil {
			return Type{}, err
		}
		if t == VoidType {
			return Type{}, fmt.Errorf("line %d: 'void' type not allowed here", e.Args[0].Pos())
		}
		fc.emit(vm.OpCallNative.With(fc.constIndex(&vm.NativeRef{Name: "String.valueOf", Argc: 1})), 0)
		return StringType, nil
	}

	k, ok := wrapper.KindOf(e.Class)
	if !ok {
		return Type{}, fmt.Errorf("line %d: cannot find symbol: class %s", e.Line, e.Class)
	}
	if e.Method != "valueOf" {
		return Type{}, fmt.Errorf("line %d: cannot find symbol: method %s.%s", e.Line, e.Class, e.Method)
	}
	if len(e.Args) != 1 {
		return Type{}, fmt.Errorf("line %d: %s.valueOf expects one argument", e.Line, e.Class)
	}
	if err := fc.compileAssignable(e.Args[0], PrimType(k), vm.SiteArgument); err != nil {
		return Type{}, err
	}
	fc.emit(vm.OpCallNative.With(fc.constIndex(&vm.NativeRef{Name: e.Class + ".valueOf", Argc: 1})), 0)
	return WrapperType(k), nil
}

func (fc *funcCompiler) compileMethodCall(e *lang.MethodCall) (Type, error) {
	recv, err := fc.compileExpr(e.Recv)
	if err != nil {
		return Type{}, err
	}
	if recv == NullType {
		return Type{}, fmt.Errorf("line %d: <null> cannot be dereferenced", e.Line)
	}
	if !recv.IsWrapper() {
		return Type{}, fmt.Errorf("line %d: cannot find symbol: method %s on %s", e.Line, e.Method, recv)
	}

	if k, ok := valueMethods[e.Method]; ok {
		if len(e.Args) != 0 {
			return Type{}, fmt.Errorf("line %d: %s expects no arguments", e.Line, e.Method)
		}
		if err := checkValueMethod(recv.Kind, e.Method, k, e.Line); err != nil {
			return Type{}, err
		}
		fc.emit(vm.OpCallNative.With(fc.constIndex(&vm.NativeRef{Name: e.Method, Argc: 1})), 0)
		return PrimType(k), nil
	}

	if e.Method == "equals" {
		if len(e.Args) != 1 {
			return Type{}, fmt.Errorf("line %d: equals expects one argument", e.Line)
		}
		t, err := fc.compileExpr(e.Args[0])
		if err != nil {
			return Type{}, err
		}
		if t.IsPrim() {
			// equals takes a reference, so a primitive argument boxes
			fc.emit(vm.OpBox.With(int(vm.SiteArgument)), 0)
		} else if t == VoidType {
			return Type{}, fmt.Errorf("line %d: 'void' type not allowed here", e.Args[0].Pos())
		}
		fc.emit(vm.OpCallNative.With(fc.constIndex(&vm.NativeRef{Name: "equals", Argc: 2})), -1)
		return PrimType(jtype.Boolean), nil
	}

	return Type{}, fmt.Errorf("line %d: cannot find symbol: method %s", e.Line, e.Method)
}

// checkValueMethod pairs accessors with receivers: booleanValue needs a
// Boolean, charValue a Character, the numeric accessors any of the six
// numeric wrappers.
func checkValueMethod(recv jtype.Kind, method string, result jtype.Kind, line int) error {
	switch result {
	case jtype.Boolean, jtype.Char:
		if recv != result {
			return fmt.Errorf("line %d: cannot find symbol: method %s on %s", line, method, wrapper.ClassName(recv))
		}
	default:
		if recv == jtype.Boolean || recv == jtype.Char {
			return fmt.Errorf("line %d: cannot find symbol: method %s on %s", line, method, wrapper.ClassName(recv))
		}
	}
	return nil
}
