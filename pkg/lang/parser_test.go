package lang

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
)

var opText = map[TokenKind]string{
	TokPlus:    "+",
	TokMinus:   "-",
	TokStar:    "*",
	TokSlash:   "/",
	TokPercent: "%",
	TokLt:      "<",
	TokLe:      "<=",
	TokGt:      ">",
	TokGe:      ">=",
	TokEq:      "==",
	TokNe:      "!=",
	TokNot:     "!",
}

// exprString renders an expression as an s-expression so precedence
// and associativity are visible in test tables.
func exprString(x Expr) string {
	switch e := x.(type) {
	case *Literal:
		switch e.Kind {
		case LitInt:
			return strconv.FormatInt(e.Int, 10)
		case LitLong:
			return strconv.FormatInt(e.Int, 10) + "L"
		case LitFloat:
			return strconv.FormatFloat(e.Float, 'g', -1, 64) + "f"
		case LitDouble:
			return strconv.FormatFloat(e.Float, 'g', -1, 64) + "d"
		case LitChar:
			return "'" + string(rune(e.Int)) + "'"
		case LitString:
			return strconv.Quote(e.Str)
		case LitBool:
			return strconv.FormatBool(e.Bool)
		case LitNull:
			return "null"
		}
	case *Ident:
		return e.Name
	case *Unary:
		return fmt.Sprintf("(%s %s)", opText[e.Op], exprString(e.X))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", opText[e.Op], exprString(e.X), exprString(e.Y))
	case *Call:
		return e.Name + "(" + argsString(e.Args) + ")"
	case *StaticCall:
		return e.Class + "." + e.Method + "(" + argsString(e.Args) + ")"
	case *MethodCall:
		return exprString(e.Recv) + "." + e.Method + "(" + argsString(e.Args) + ")"
	case *PrintCall:
		return "System.out." + e.Method + "(" + argsString(e.Args) + ")"
	}
	return "?"
}

func argsString(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = exprString(a)
	}
	return strings.Join(parts, ", ")
}

func parseTestExpr(t *testing.T, src string) Expr {
	t.Helper()
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q) error: %v", src, err)
	}
	p := NewParser(toks)
	x, err := p.parseExpr()
	if err != nil {
		t.Fatalf("parseExpr(%q) error: %v", src, err)
	}
	if p.peek().Kind != TokEOF {
		t.Fatalf("parseExpr(%q) stopped at %s", src, p.peek())
	}
	return x
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"a - b - c", "(- (- a b) c)"},
		{"a < b == c < d", "(== (< a b) (< c d))"},
		{"i % 2 == 0", "(== (% i 2) 0)"},
		{"-x * y", "(* (- x) y)"},
		{"- -5", "(- (- 5))"},
		{"!done", "(! done)"},
		{"10L + 2.5f", "(+ 10L 2.5f)"},
		{`"n = " + n + "!"`, `(+ (+ "n = " n) "!")`},
		{"twice(n + 1)", "twice((+ n 1))"},
		{"Integer.valueOf(100)", "Integer.valueOf(100)"},
		{"Integer.valueOf(100).intValue()", "Integer.valueOf(100).intValue()"},
		{"iOb.equals(jOb)", "iOb.equals(jOb)"},
		{"iOb == jOb", "(== iOb jOb)"},
		{"x != null", "(!= x null)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := exprString(parseTestExpr(t, tt.src))
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	src := `
// doubles its argument
static int twice(int n) {
    return n * 2;
}

static void main() {
    Integer iOb = twice(10);
    System.out.println("iOb value = " + iOb);
}
`
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(file.Methods) != 2 {
		t.Fatalf("parsed %d methods, want 2", len(file.Methods))
	}

	twice := file.Methods[0]
	if twice.Name != "twice" || twice.Result.Name != "int" {
		t.Errorf("method 0 = %s %s, want int twice", twice.Result.Name, twice.Name)
	}
	if len(twice.Params) != 1 || twice.Params[0].Type.Name != "int" || twice.Params[0].Name != "n" {
		t.Errorf("twice params = %+v, want [int n]", twice.Params)
	}

	main := file.Methods[1]
	if main.Name != "main" || main.Result.Name != "void" || len(main.Params) != 0 {
		t.Errorf("method 1 = %s %s, want void main()", main.Result.Name, main.Name)
	}
	if len(main.Body.Stmts) != 2 {
		t.Fatalf("main has %d statements, want 2", len(main.Body.Stmts))
	}
	decl, ok := main.Body.Stmts[0].(*VarDecl)
	if !ok {
		t.Fatalf("statement 0 is %T, want *VarDecl", main.Body.Stmts[0])
	}
	if decl.Type.Name != "Integer" || decl.Name != "iOb" {
		t.Errorf("declaration = %s %s, want Integer iOb", decl.Type.Name, decl.Name)
	}
	es, ok := main.Body.Stmts[1].(*ExprStmt)
	if !ok {
		t.Fatalf("statement 1 is %T, want *ExprStmt", main.Body.Stmts[1])
	}
	pc, ok := es.X.(*PrintCall)
	if !ok || pc.Method != "println" || len(pc.Args) != 1 {
		t.Errorf("statement 1 = %s, want a println call", exprString(es.X))
	}
}

func parseTestStmt(t *testing.T, src string) Stmt {
	t.Helper()
	file, err := Parse("static void main() {\n" + src + "\n}")
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	if len(file.Methods[0].Body.Stmts) != 1 {
		t.Fatalf("parsed %d statements, want 1", len(file.Methods[0].Body.Stmts))
	}
	return file.Methods[0].Body.Stmts[0]
}

func TestParseStatements(t *testing.T) {
	t.Run("assignment", func(t *testing.T) {
		s, ok := parseTestStmt(t, "i = i + 1;").(*AssignStmt)
		if !ok {
			t.Fatal("not an *AssignStmt")
		}
		if s.Name != "i" || exprString(s.Value) != "(+ i 1)" {
			t.Errorf("got %s = %s", s.Name, exprString(s.Value))
		}
	})

	t.Run("postfix increment", func(t *testing.T) {
		s, ok := parseTestStmt(t, "i++;").(*IncDecStmt)
		if !ok {
			t.Fatal("not an *IncDecStmt")
		}
		if s.Name != "i" || s.Op != TokInc {
			t.Errorf("got %s %s", s.Name, s.Op)
		}
	})

	t.Run("prefix decrement", func(t *testing.T) {
		s, ok := parseTestStmt(t, "--i;").(*IncDecStmt)
		if !ok {
			t.Fatal("not an *IncDecStmt")
		}
		if s.Name != "i" || s.Op != TokDec {
			t.Errorf("got %s %s", s.Name, s.Op)
		}
	})

	t.Run("if else chain", func(t *testing.T) {
		s, ok := parseTestStmt(t, "if (a == b) { f(); } else if (c) { g(); }").(*IfStmt)
		if !ok {
			t.Fatal("not an *IfStmt")
		}
		if exprString(s.Cond) != "(== a b)" {
			t.Errorf("condition = %s", exprString(s.Cond))
		}
		elif, ok := s.Else.(*IfStmt)
		if !ok {
			t.Fatalf("else branch is %T, want *IfStmt", s.Else)
		}
		if exprString(elif.Cond) != "c" {
			t.Errorf("else-if condition = %s", exprString(elif.Cond))
		}
	})

	t.Run("braceless if branch", func(t *testing.T) {
		s, ok := parseTestStmt(t, "if (ok) f();").(*IfStmt)
		if !ok {
			t.Fatal("not an *IfStmt")
		}
		if len(s.Then.Stmts) != 1 {
			t.Errorf("then branch has %d statements, want 1", len(s.Then.Stmts))
		}
	})

	t.Run("switch with fallthrough labels", func(t *testing.T) {
		s, ok := parseTestStmt(t, "switch (k) { case 1: case 2: f(); break; default: g(); }").(*SwitchStmt)
		if !ok {
			t.Fatal("not a *SwitchStmt")
		}
		if len(s.Cases) != 3 {
			t.Fatalf("parsed %d clauses, want 3", len(s.Cases))
		}
		if len(s.Cases[0].Body) != 0 {
			t.Errorf("clause 0 has %d statements, want 0 (falls through)", len(s.Cases[0].Body))
		}
		if len(s.Cases[1].Body) != 2 {
			t.Errorf("clause 1 has %d statements, want 2", len(s.Cases[1].Body))
		}
		if _, ok := s.Cases[1].Body[1].(*BreakStmt); !ok {
			t.Errorf("clause 1 does not end in break")
		}
		if !s.Cases[2].Default {
			t.Errorf("clause 2 is not default")
		}
	})

	t.Run("bare return", func(t *testing.T) {
		s, ok := parseTestStmt(t, "return;").(*ReturnStmt)
		if !ok {
			t.Fatal("not a *ReturnStmt")
		}
		if s.Value != nil {
			t.Errorf("value = %s, want none", exprString(s.Value))
		}
	})

	t.Run("plain println call", func(t *testing.T) {
		s, ok := parseTestStmt(t, "println(x);").(*ExprStmt)
		if !ok {
			t.Fatal("not an *ExprStmt")
		}
		if exprString(s.X) != "println(x)" {
			t.Errorf("expression = %s", exprString(s.X))
		}
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			"missing semicolon",
			"static void main() { int i = 10 }",
			"expected ';', found '}'",
		},
		{
			"missing initializer",
			"static void main() { int i; }",
			"line 1: variable i declared without an initializer",
		},
		{
			"literal statement",
			"static void main() { 5; }",
			"line 1: not a statement",
		},
		{
			"expression statement",
			"static void main() { x + 1; }",
			"line 1: not a statement",
		},
		{
			"statement in switch body",
			"static void main() { switch (x) { f(); } }",
			"expected 'case' or 'default'",
		},
		{
			"unknown System member",
			"static void main() { System.err.println(x); }",
			"line 1: unknown System member err",
		},
		{
			"unknown print method",
			"static void main() { System.out.flush(); }",
			"line 1: unknown method System.out.flush",
		},
		{
			"missing static",
			"void main() {}",
			"expected 'static', found identifier \"void\"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse() succeeded, want error %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %q, want containing %q", err, tt.wantErr)
			}
		})
	}
}
