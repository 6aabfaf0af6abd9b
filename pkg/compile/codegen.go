package compile

import (
	"fmt"
	"math"
	"sort"

	"github.com/boxvm/boxvm/pkg/jtype"
	"github.com/boxvm/boxvm/pkg/lang"
	"github.com/boxvm/boxvm/pkg/vm"
)

// local is a declared variable: its frame slot and resolved type.
type local struct {
	slot int
	typ  Type
}

// funcCompiler compiles one method body. It tracks the simulated
// operand stack depth to size the frame and keeps a patch list per
// enclosing switch for break targets.
type funcCompiler struct {
	c         *compiler
	info      *methodInfo
	method    *vm.Method
	scopes    []map[string]local
	numLocals int
	depth     int
	breaks    [][]int
}

// emit appends an instruction word and adjusts the simulated stack
// depth by delta. It returns the word's code index for jump patching.
func (fc *funcCompiler) emit(op vm.Op, delta int) int {
	fc.method.Code = append(fc.method.Code, op)
	fc.depth += delta
	if fc.depth > fc.method.MaxStack {
		fc.method.MaxStack = fc.depth
	}
	return len(fc.method.Code) - 1
}

// patch rewrites the operand of a previously emitted branch.
func (fc *funcCompiler) patch(pc, target int) {
	fc.method.Code[pc] = fc.method.Code[pc].Code().With(target)
}

// here is the code index the next instruction will occupy.
func (fc *funcCompiler) here() int {
	return len(fc.method.Code)
}

func (fc *funcCompiler) constIndex(c vm.Const) int {
	fc.method.Consts = append(fc.method.Consts, c)
	return len(fc.method.Consts) - 1
}

func (fc *funcCompiler) emitConst(v vm.Const) {
	fc.emit(vm.OpConst.With(fc.constIndex(v)), 1)
}

func (fc *funcCompiler) emitConvert(site vm.Site, from, to jtype.Kind) {
	fc.emit(vm.OpConvert.With(vm.EncodeConvert(site, from, to)), 0)
}

func (fc *funcCompiler) pushScope() {
	fc.scopes = append(fc.scopes, map[string]local{})
}

func (fc *funcCompiler) popScope() {
	fc.scopes = fc.scopes[:len(fc.scopes)-1]
}

// define allocates a slot for a new variable. Redeclaring a name that is
// visible anywhere in the method is an error, as in Java.
func (fc *funcCompiler) define(name string, typ Type, line int) (int, error) {
	for _, sc := range fc.scopes {
		if _, ok := sc[name]; ok {
			return 0, fmt.Errorf("line %d: variable %s is already defined in method %s", line, name, fc.method.Name)
		}
	}
	slot := fc.numLocals
	fc.numLocals++
	if fc.numLocals > fc.method.MaxLocals {
		fc.method.MaxLocals = fc.numLocals
	}
	fc.scopes[len(fc.scopes)-1][name] = local{slot: slot, typ: typ}
	return slot, nil
}

func (fc *funcCompiler) lookup(name string, line int) (local, error) {
	for i := len(fc.scopes) - 1; i >= 0; i-- {
		if l, ok := fc.scopes[i][name]; ok {
			return l, nil
		}
	}
	return local{}, fmt.Errorf("line %d: cannot find symbol: variable %s", line, name)
}

func (fc *funcCompiler) compileBlock(b *lang.Block) error {
	fc.pushScope()
	defer fc.popScope()
	for _, s := range b.Stmts {
		if err := fc.compileStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (fc *funcCompiler) compileStmt(s lang.Stmt) error {
	switch s := s.(type) {
	case *lang.Block:
		return fc.compileBlock(s)

	case *lang.VarDecl:
		typ, err := resolveType(s.Type)
		if err != nil {
			return err
		}
		if typ == VoidType {
			return fmt.Errorf("line %d: 'void' type not allowed here", s.Type.Line)
		}
		if err := fc.compileAssignable(s.Init, typ, vm.SiteAssignment); err != nil {
			return err
		}
		// defined after the initializer so it cannot refer to itself
		slot, err := fc.define(s.Name, typ, s.Line)
		if err != nil {
			return err
		}
		fc.emit(vm.OpStore.With(slot), -1)
		return nil

	case *lang.AssignStmt:
		l, err := fc.lookup(s.Name, s.Line)
		if err != nil {
			return err
		}
		if err := fc.compileAssignable(s.Value, l.typ, vm.SiteAssignment); err != nil {
			return err
		}
		fc.emit(vm.OpStore.With(l.slot), -1)
		return nil

	case *lang.IncDecStmt:
		return fc.compileIncDec(s)

	case *lang.ExprStmt:
		t, err := fc.compileExpr(s.X)
		if err != nil {
			return err
		}
		if t != VoidType {
			fc.emit(vm.OpPop.Word(), -1)
		}
		return nil

	case *lang.IfStmt:
		return fc.compileIf(s)

	case *lang.SwitchStmt:
		return fc.compileSwitch(s)

	case *lang.BreakStmt:
		if len(fc.breaks) == 0 {
			return fmt.Errorf("line %d: break outside switch", s.Line)
		}
		pc := fc.emit(vm.OpJump.With(0), 0)
		fc.breaks[len(fc.breaks)-1] = append(fc.breaks[len(fc.breaks)-1], pc)
		return nil

	case *lang.ReturnStmt:
		result := fc.info.result
		if s.Value == nil {
			if result != VoidType {
				return fmt.Errorf("line %d: incompatible types: missing return value", s.Line)
			}
			fc.emit(vm.OpReturn.Word(), 0)
			return nil
		}
		if result == VoidType {
			return fmt.Errorf("line %d: incompatible types: unexpected return value", s.Line)
		}
		if err := fc.compileAssignable(s.Value, result, vm.SiteReturn); err != nil {
			return err
		}
		fc.emit(vm.OpReturnValue.Word(), -1)
		return nil
	}
	return fmt.Errorf("line %d: cannot compile %T", s.Pos(), s)
}

// compileCondition compiles a boolean context: boolean passes through, a
// Boolean wrapper is unboxed, anything else is an error.
func (fc *funcCompiler) compileCondition(e lang.Expr) error {
	t, err := fc.compileExpr(e)
	if err != nil {
		return err
	}
	switch t {
	case PrimType(jtype.Boolean):
	case WrapperType(jtype.Boolean):
		fc.emit(vm.OpUnbox.With(int(vm.SiteCondition)), 0)
	default:
		return fmt.Errorf("line %d: incompatible types: %s cannot be converted to boolean", e.Pos(), t)
	}
	return nil
}

func (fc *funcCompiler) compileIf(s *lang.IfStmt) error {
	if err := fc.compileCondition(s.Cond); err != nil {
		return err
	}
	jumpFalse := fc.emit(vm.OpJumpIfFalse.With(0), -1)
	if err := fc.compileBlock(s.Then); err != nil {
		return err
	}
	if s.Else == nil {
		fc.patch(jumpFalse, fc.here())
		return nil
	}
	jumpEnd := fc.emit(vm.OpJump.With(0), 0)
	fc.patch(jumpFalse, fc.here())
	if err := fc.compileStmt(s.Else); err != nil {
		return err
	}
	fc.patch(jumpEnd, fc.here())
	return nil
}

// compileIncDec compiles i++ and friends: load, unbox a wrapper, widen a
// sub-int kind, add or subtract one, and undo the conversions on the way
// back into the variable.
func (fc *funcCompiler) compileIncDec(s *lang.IncDecStmt) error {
	l, err := fc.lookup(s.Name, s.Line)
	if err != nil {
		return err
	}
	t := l.typ
	if !(t.IsPrim() || t.IsWrapper()) || !t.Kind.IsNumeric() {
		return fmt.Errorf("line %d: bad operand type %s for unary operator %s", s.Line, t, s.Op)
	}

	kind := t.Kind
	promoted := jtype.PromoteUnary(kind)
	fc.emit(vm.OpLoad.With(l.slot), 1)
	if t.IsWrapper() {
		fc.emit(vm.OpUnbox.With(int(vm.SiteIncrement)), 0)
	}
	if promoted != kind {
		fc.emitConvert(vm.SiteIncrement, kind, promoted)
	}
	fc.emitConst(oneOf(promoted))
	if s.Op == lang.TokInc {
		fc.emit(vm.OpAdd.Word(), -1)
	} else {
		fc.emit(vm.OpSub.Word(), -1)
	}
	if promoted != kind {
		fc.emitConvert(vm.SiteIncrement, promoted, kind)
	}
	if t.IsWrapper() {
		fc.emit(vm.OpBox.With(int(vm.SiteIncrement)), 0)
	}
	fc.emit(vm.OpStore.With(l.slot), -1)
	return nil
}

// oneOf returns the constant 1 in a promoted kind.
func oneOf(k jtype.Kind) jtype.Value {
	switch k {
	case jtype.Long:
		return jtype.LongOf(1)
	case jtype.Float:
		return jtype.FloatOf(1)
	case jtype.Double:
		return jtype.DoubleOf(1)
	}
	return jtype.IntOf(1)
}

func (fc *funcCompiler) compileSwitch(s *lang.SwitchStmt) error {
	tag, err := fc.compileExpr(s.Tag)
	if err != nil {
		return err
	}
	switch {
	case tag.IsWrapper() && intCompatible(tag.Kind):
		fc.emit(vm.OpUnbox.With(int(vm.SiteSwitch)), 0)
	case tag.IsPrim() && intCompatible(tag.Kind):
	default:
		return fmt.Errorf("line %d: incompatible types: %s cannot be converted to int", s.Tag.Pos(), tag)
	}

	if len(s.Cases) == 0 {
		fc.emit(vm.OpPop.Word(), -1)
		return nil
	}

	keys, caseIdx, defaultIdx, err := switchLabels(s)
	if err != nil {
		return err
	}

	// The tables live in the constant pool and are filled in after the
	// clause bodies are laid out.
	var ts *vm.TableSwitch
	var ls *vm.LookupSwitch
	if useTableSwitch(keys) {
		lo, hi := keyRange(keys)
		ts = &vm.TableSwitch{Lo: lo, Targets: make([]int, int(hi-lo)+1)}
		fc.emit(vm.OpTableSwitch.With(fc.constIndex(ts)), -1)
	} else {
		ls = &vm.LookupSwitch{}
		fc.emit(vm.OpLookupSwitch.With(fc.constIndex(ls)), -1)
	}

	// One scope for the whole switch body; clause bodies run into the
	// next clause unless a break jumps out.
	clausePC := make([]int, len(s.Cases))
	fc.breaks = append(fc.breaks, nil)
	fc.pushScope()
	for i, cl := range s.Cases {
		clausePC[i] = fc.here()
		for _, st := range cl.Body {
			if err := fc.compileStmt(st); err != nil {
				return err
			}
		}
	}
	fc.popScope()

	exit := fc.here()
	for _, pc := range fc.breaks[len(fc.breaks)-1] {
		fc.patch(pc, exit)
	}
	fc.breaks = fc.breaks[:len(fc.breaks)-1]

	defTarget := exit
	if defaultIdx >= 0 {
		defTarget = clausePC[defaultIdx]
	}
	if ts != nil {
		for i := range ts.Targets {
			ts.Targets[i] = defTarget
		}
		for j, k := range keys {
			ts.Targets[k-ts.Lo] = clausePC[caseIdx[j]]
		}
		ts.Default = defTarget
	} else {
		// lookup keys are kept sorted, as in a class file
		ord := make([]int, len(keys))
		for j := range ord {
			ord[j] = j
		}
		sort.Slice(ord, func(a, b int) bool { return keys[ord[a]] < keys[ord[b]] })
		ls.Keys = make([]int32, len(keys))
		ls.Targets = make([]int, len(keys))
		for j, o := range ord {
			ls.Keys[j] = keys[o]
			ls.Targets[j] = clausePC[caseIdx[o]]
		}
		ls.Default = defTarget
	}
	return nil
}

// switchLabels evaluates the case labels: each must be a distinct int
// constant expression; at most one default.
func switchLabels(s *lang.SwitchStmt) (keys []int32, caseIdx []int, defaultIdx int, err error) {
	defaultIdx = -1
	seen := map[int32]bool{}
	for i, cl := range s.Cases {
		if cl.Default {
			if defaultIdx >= 0 {
				return nil, nil, 0, fmt.Errorf("line %d: duplicate default label", cl.Line)
			}
			defaultIdx = i
			continue
		}
		v, ok := intConst(cl.Value)
		if !ok {
			return nil, nil, 0, fmt.Errorf("line %d: constant expression required", cl.Value.Pos())
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, nil, 0, fmt.Errorf("line %d: integer number too large", cl.Value.Pos())
		}
		k := int32(v)
		if seen[k] {
			return nil, nil, 0, fmt.Errorf("line %d: duplicate case label", cl.Line)
		}
		seen[k] = true
		keys = append(keys, k)
		caseIdx = append(caseIdx, i)
	}
	return keys, caseIdx, defaultIdx, nil
}

// useTableSwitch picks the dense table form when the key range is no
// more than twice the key count.
func useTableSwitch(keys []int32) bool {
	if len(keys) == 0 {
		return false
	}
	lo, hi := keyRange(keys)
	return int64(hi)-int64(lo)+1 <= int64(2*len(keys))
}

func keyRange(keys []int32) (lo, hi int32) {
	lo, hi = keys[0], keys[0]
	for _, k := range keys {
		if k < lo {
			lo = k
		}
		if k > hi {
			hi = k
		}
	}
	return lo, hi
}

// intCompatible reports whether a kind is a legal switch selector.
func intCompatible(k jtype.Kind) bool {
	return k.IsIntegral() && k != jtype.Long
}
