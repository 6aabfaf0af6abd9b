package compile

import (
	"fmt"

	"github.com/boxvm/boxvm/pkg/lang"
	"github.com/boxvm/boxvm/pkg/vm"
)

// methodInfo is the resolved signature of a declared method.
type methodInfo struct {
	index  int
	decl   *lang.MethodDecl
	params []Type
	result Type
}

// compiler holds the method table shared by all method bodies, so that
// methods can call each other regardless of declaration order.
type compiler struct {
	methods map[string]*methodInfo
	order   []*methodInfo
}

// Compile translates a parsed file into an executable program named
// name. It resolves all signatures first, then type-checks each body
// and places the boxing, unboxing and primitive conversions the source
// leaves implicit.
func Compile(name string, file *lang.File) (*vm.Program, error) {
	c := &compiler{methods: map[string]*methodInfo{}}
	for _, decl := range file.Methods {
		if _, dup := c.methods[decl.Name]; dup {
			return nil, fmt.Errorf("line %d: method %s is already defined", decl.Line, decl.Name)
		}
		result, err := resolveType(decl.Result)
		if err != nil {
			return nil, err
		}
		params := make([]Type, len(decl.Params))
		for i, p := range decl.Params {
			pt, err := resolveType(p.Type)
			if err != nil {
				return nil, err
			}
			if pt == VoidType {
				return nil, fmt.Errorf("line %d: 'void' type not allowed here", p.Line)
			}
			params[i] = pt
		}
		info := &methodInfo{index: len(c.order), decl: decl, params: params, result: result}
		c.methods[decl.Name] = info
		c.order = append(c.order, info)
	}

	prog := &vm.Program{Name: name, Entry: "main"}
	for _, info := range c.order {
		m, err := c.compileMethod(info)
		if err != nil {
			return nil, err
		}
		prog.Methods = append(prog.Methods, m)
	}
	return prog, nil
}

// CompileSource parses and compiles a source text in one step.
func CompileSource(name, src string) (*vm.Program, error) {
	file, err := lang.Parse(src)
	if err != nil {
		return nil, err
	}
	return Compile(name, file)
}

func (c *compiler) compileMethod(info *methodInfo) (*vm.Method, error) {
	fc := &funcCompiler{
		c:    c,
		info: info,
		method: &vm.Method{
			Name:      info.decl.Name,
			NumParams: len(info.params),
			Returns:   info.result != VoidType,
		},
	}
	fc.pushScope()
	for i, p := range info.decl.Params {
		if _, err := fc.define(p.Name, info.params[i], p.Line); err != nil {
			return nil, err
		}
	}
	if err := fc.compileBlock(info.decl.Body); err != nil {
		return nil, err
	}
	fc.popScope()

	if info.result != VoidType && !blockReturns(info.decl.Body) {
		return nil, fmt.Errorf("line %d: missing return statement in method %s", info.decl.Line, info.decl.Name)
	}
	fc.emit(vm.OpReturn.Word(), 0)
	return fc.method, nil
}

// blockReturns reports whether a block always ends in a return. The
// analysis is conservative: an if counts only with returning branches on
// both sides, a switch only when a default is present and every clause
// body ends in a return.
func blockReturns(b *lang.Block) bool {
	if len(b.Stmts) == 0 {
		return false
	}
	return stmtReturns(b.Stmts[len(b.Stmts)-1])
}

func stmtReturns(s lang.Stmt) bool {
	switch s := s.(type) {
	case *lang.ReturnStmt:
		return true
	case *lang.Block:
		return blockReturns(s)
	case *lang.IfStmt:
		return s.Else != nil && blockReturns(s.Then) && stmtReturns(s.Else)
	case *lang.SwitchStmt:
		hasDefault := false
		for _, cl := range s.Cases {
			if cl.Default {
				hasDefault = true
			}
			if len(cl.Body) == 0 || !stmtReturns(cl.Body[len(cl.Body)-1]) {
				return false
			}
		}
		return hasDefault
	}
	return false
}
