package compile

import (
	"fmt"

	"github.com/boxvm/boxvm/pkg/jtype"
	"github.com/boxvm/boxvm/pkg/lang"
	"github.com/boxvm/boxvm/pkg/vm"
	"github.com/boxvm/boxvm/pkg/wrapper"
)

// compileAssignable compiles e and converts its value to the target
// type, applying the assignment-context conversions: identity, widening,
// boxing of the exact kind (with int-constant narrowing first when it
// applies), and unboxing followed by optional widening. Arguments and
// return values follow the same rules except that invocation context
// drops constant narrowing; site tags the emitted conversions.
func (fc *funcCompiler) compileAssignable(e lang.Expr, to Type, site vm.Site) error {
	from, err := fc.compileExpr(e)
	if err != nil {
		return err
	}
	return fc.convertAssign(e, from, to, site)
}

func (fc *funcCompiler) convertAssign(e lang.Expr, from, to Type, site vm.Site) error {
	if from == to {
		return nil
	}
	line := e.Pos()

	switch {
	case from.IsPrim() && to.IsPrim():
		if jtype.IsWidening(from.Kind, to.Kind) {
			fc.emitConvert(site, from.Kind, to.Kind)
			return nil
		}
		if constNarrowOK(site, from.Kind, to.Kind) {
			if n, ok := intConst(e); ok && jtype.FitsConstant(n, to.Kind) {
				fc.emitConvert(site, jtype.Int, to.Kind)
				return nil
			}
		}
		if jtype.IsNarrowing(from.Kind, to.Kind) {
			return fmt.Errorf("line %d: incompatible types: possible lossy conversion from %s to %s", line, from, to)
		}

	case from.IsPrim() && to.IsWrapper():
		if from.Kind == to.Kind {
			fc.emit(vm.OpBox.With(int(site)), 0)
			return nil
		}
		if constNarrowOK(site, from.Kind, to.Kind) {
			if n, ok := intConst(e); ok && jtype.FitsConstant(n, to.Kind) {
				fc.emitConvert(site, jtype.Int, to.Kind)
				fc.emit(vm.OpBox.With(int(site)), 0)
				return nil
			}
		}

	case from.IsWrapper() && to.IsPrim():
		if from.Kind == to.Kind {
			fc.emit(vm.OpUnbox.With(int(site)), 0)
			return nil
		}
		if jtype.IsWidening(from.Kind, to.Kind) {
			fc.emit(vm.OpUnbox.With(int(site)), 0)
			fc.emitConvert(site, from.Kind, to.Kind)
			return nil
		}

	case from == NullType && (to.IsWrapper() || to == StringType):
		return nil

	case from == VoidType:
		return fmt.Errorf("line %d: 'void' type not allowed here", line)
	}

	return fmt.Errorf("line %d: incompatible types: %s cannot be converted to %s", line, from, to)
}

// constNarrowOK reports whether an int constant may implicitly narrow to
// k. Assignment and return contexts allow it for byte, short and char;
// method invocation never does, so f(5) with a byte parameter fails the
// way it would under javac.
func constNarrowOK(site vm.Site, from, k jtype.Kind) bool {
	if site == vm.SiteArgument || from != jtype.Int {
		return false
	}
	return k == jtype.Byte || k == jtype.Short || k == jtype.Char
}

// typeOf computes an expression's static type without emitting code.
// compileExpr re-derives the same types while emitting; binary operands
// need this peek so the left operand's conversions land before the
// right operand is compiled.
func (fc *funcCompiler) typeOf(e lang.Expr) (Type, error) {
	switch e := e.(type) {
	case *lang.Literal:
		return literalType(e), nil

	case *lang.Ident:
		l, err := fc.lookup(e.Name, e.Line)
		if err != nil {
			return Type{}, err
		}
		return l.typ, nil

	case *lang.Unary:
		if e.Op == lang.TokNot {
			return PrimType(jtype.Boolean), nil
		}
		t, err := fc.typeOf(e.X)
		if err != nil {
			return Type{}, err
		}
		if k, ok := numericOperand(t); ok {
			return PrimType(jtype.PromoteUnary(k)), nil
		}
		// the operand error surfaces when the expression is compiled
		return t, nil

	case *lang.Binary:
		switch e.Op {
		case lang.TokEq, lang.TokNe, lang.TokLt, lang.TokLe, lang.TokGt, lang.TokGe:
			return PrimType(jtype.Boolean), nil
		}
		tx, err := fc.typeOf(e.X)
		if err != nil {
			return Type{}, err
		}
		ty, err := fc.typeOf(e.Y)
		if err != nil {
			return Type{}, err
		}
		if e.Op == lang.TokPlus && (tx == StringType || ty == StringType) {
			return StringType, nil
		}
		kx, okx := numericOperand(tx)
		ky, oky := numericOperand(ty)
		if !okx || !oky {
			return Type{}, fmt.Errorf("line %d: bad operand types for binary operator %s: %s and %s", e.Line, e.Op, tx, ty)
		}
		return PrimType(jtype.Promote(kx, ky)), nil

	case *lang.Call:
		if info, ok := fc.c.methods[e.Name]; ok {
			return info.result, nil
		}
		if e.Name == "println" || e.Name == "print" {
			return VoidType, nil
		}
		return Type{}, fmt.Errorf("line %d: cannot find symbol: method %s", e.Line, e.Name)

	case *lang.StaticCall:
		if e.Class == "String" {
			return StringType, nil
		}
		if k, ok := wrapper.KindOf(e.Class); ok {
			return WrapperType(k), nil
		}
		return Type{}, fmt.Errorf("line %d: cannot find symbol: class %s", e.Line, e.Class)

	case *lang.MethodCall:
		if k, ok := valueMethods[e.Method]; ok {
			return PrimType(k), nil
		}
		if e.Method == "equals" {
			return PrimType(jtype.Boolean), nil
		}
		return Type{}, fmt.Errorf("line %d: cannot find symbol: method %s", e.Line, e.Method)

	case *lang.PrintCall:
		return VoidType, nil
	}
	return Type{}, fmt.Errorf("line %d: cannot type %T", e.Pos(), e)
}

func literalType(e *lang.Literal) Type {
	switch e.Kind {
	case lang.LitInt:
		return PrimType(jtype.Int)
	case lang.LitLong:
		return PrimType(jtype.Long)
	case lang.LitFloat:
		return PrimType(jtype.Float)
	case lang.LitDouble:
		return PrimType(jtype.Double)
	case lang.LitChar:
		return PrimType(jtype.Char)
	case lang.LitString:
		return StringType
	case lang.LitBool:
		return PrimType(jtype.Boolean)
	}
	return NullType
}

// intConst evaluates constant expressions of type int: int and char
// literals combined with unary minus and the arithmetic operators.
// These feed constant narrowing and case labels. Arithmetic wraps to
// 32 bits the way Java constant folding does; division by a zero
// constant is simply not a constant, and fails at runtime instead.
func intConst(e lang.Expr) (int64, bool) {
	switch e := e.(type) {
	case *lang.Literal:
		if e.Kind == lang.LitInt || e.Kind == lang.LitChar {
			return e.Int, true
		}

	case *lang.Unary:
		if e.Op != lang.TokMinus {
			return 0, false
		}
		if v, ok := intConst(e.X); ok {
			return int64(int32(-v)), true
		}

	case *lang.Binary:
		x, ok := intConst(e.X)
		if !ok {
			return 0, false
		}
		y, ok := intConst(e.Y)
		if !ok {
			return 0, false
		}
		a, b := int64(int32(x)), int64(int32(y))
		var v int64
		switch e.Op {
		case lang.TokPlus:
			v = a + b
		case lang.TokMinus:
			v = a - b
		case lang.TokStar:
			v = a * b
		case lang.TokSlash:
			if b == 0 {
				return 0, false
			}
			v = a / b
		case lang.TokPercent:
			if b == 0 {
				return 0, false
			}
			v = a % b
		default:
			return 0, false
		}
		return int64(int32(v)), true
	}
	return 0, false
}
