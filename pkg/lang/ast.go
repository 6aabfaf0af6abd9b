package lang

// Node is implemented by every AST node.
type Node interface {
	Pos() int
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// File is a parsed source file: a sequence of static method declarations.
type File struct {
	Methods []*MethodDecl
}

// MethodDecl is a static method declaration.
type MethodDecl struct {
	Result TypeName
	Name   string
	Params []Param
	Body   *Block
	Line   int
}

func (d *MethodDecl) Pos() int { return d.Line }

// Param is a single method parameter.
type Param struct {
	Type TypeName
	Name string
	Line int
}

// TypeName is an unresolved type name; resolution happens during
// compilation.
type TypeName struct {
	Name string
	Line int
}

// Block is a brace-delimited statement list.
type Block struct {
	Stmts []Stmt
	Line  int
}

// VarDecl declares a local variable with a mandatory initializer.
type VarDecl struct {
	Type TypeName
	Name string
	Init Expr
	Line int
}

// AssignStmt assigns to an existing local variable.
type AssignStmt struct {
	Name  string
	Value Expr
	Line  int
}

// IncDecStmt is a ++ or -- statement, prefix or postfix.
type IncDecStmt struct {
	Name string
	Op   TokenKind
	Line int
}

// ExprStmt is a call used as a statement.
type ExprStmt struct {
	X    Expr
	Line int
}

// IfStmt is an if statement with an optional else branch. Else is a
// *Block or another *IfStmt.
type IfStmt struct {
	Cond Expr
	Then *Block
	Else Stmt
	Line int
}

// SwitchStmt is a switch over a selector with constant case labels.
type SwitchStmt struct {
	Tag   Expr
	Cases []CaseClause
	Line  int
}

// CaseClause is one case or default label with the statements that
// follow it. Execution falls through to the next clause unless a break
// intervenes.
type CaseClause struct {
	Value   Expr
	Default bool
	Body    []Stmt
	Line    int
}

// ReturnStmt returns from the enclosing method. Value is nil for a bare
// return.
type ReturnStmt struct {
	Value Expr
	Line  int
}

// BreakStmt exits the enclosing switch.
type BreakStmt struct {
	Line int
}

func (s *Block) Pos() int       { return s.Line }
func (s *VarDecl) Pos() int     { return s.Line }
func (s *AssignStmt) Pos() int  { return s.Line }
func (s *IncDecStmt) Pos() int  { return s.Line }
func (s *ExprStmt) Pos() int    { return s.Line }
func (s *IfStmt) Pos() int      { return s.Line }
func (s *SwitchStmt) Pos() int  { return s.Line }
func (s *ReturnStmt) Pos() int  { return s.Line }
func (s *BreakStmt) Pos() int   { return s.Line }

func (s *Block) stmtNode()      {}
func (s *VarDecl) stmtNode()    {}
func (s *AssignStmt) stmtNode() {}
func (s *IncDecStmt) stmtNode() {}
func (s *ExprStmt) stmtNode()   {}
func (s *IfStmt) stmtNode()     {}
func (s *SwitchStmt) stmtNode() {}
func (s *ReturnStmt) stmtNode() {}
func (s *BreakStmt) stmtNode()  {}

// LiteralKind says which literal a Literal node holds.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitLong
	LitFloat
	LitDouble
	LitChar
	LitString
	LitBool
	LitNull
)

// Literal is a literal expression. Int holds integer and char values,
// Float holds floating values, Str holds string values.
type Literal struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
	Line  int
}

// Ident is a reference to a local variable or parameter.
type Ident struct {
	Name string
	Line int
}

// Unary is a prefix - or ! expression.
type Unary struct {
	Op   TokenKind
	X    Expr
	Line int
}

// Binary is a binary operator expression.
type Binary struct {
	Op   TokenKind
	X    Expr
	Y    Expr
	Line int
}

// Call is a plain call: a user method, or the built-in println/print
// when no user method shadows them.
type Call struct {
	Name string
	Args []Expr
	Line int
}

// StaticCall is a call through a class name, such as Integer.valueOf
// or String.valueOf.
type StaticCall struct {
	Class  string
	Method string
	Args   []Expr
	Line   int
}

// MethodCall is a call on a receiver expression, such as x.intValue()
// or a.equals(b).
type MethodCall struct {
	Recv   Expr
	Method string
	Args   []Expr
	Line   int
}

// PrintCall is the explicit System.out.println / System.out.print form.
type PrintCall struct {
	Method string
	Args   []Expr
	Line   int
}

func (e *Literal) Pos() int    { return e.Line }
func (e *Ident) Pos() int      { return e.Line }
func (e *Unary) Pos() int      { return e.Line }
func (e *Binary) Pos() int     { return e.Line }
func (e *Call) Pos() int       { return e.Line }
func (e *StaticCall) Pos() int { return e.Line }
func (e *MethodCall) Pos() int { return e.Line }
func (e *PrintCall) Pos() int  { return e.Line }

func (e *Literal) exprNode()    {}
func (e *Ident) exprNode()      {}
func (e *Unary) exprNode()      {}
func (e *Binary) exprNode()     {}
func (e *Call) exprNode()       {}
func (e *StaticCall) exprNode() {}
func (e *MethodCall) exprNode() {}
func (e *PrintCall) exprNode()  {}
