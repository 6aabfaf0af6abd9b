package lang

import (
	"fmt"
	"strconv"
)

// classNames are the identifiers the parser treats as static call
// receivers rather than variables.
var classNames = map[string]bool{
	"Boolean":   true,
	"Character": true,
	"Byte":      true,
	"Short":     true,
	"Integer":   true,
	"Long":      true,
	"Float":     true,
	"Double":    true,
	"String":    true,
}

// Parser builds an AST from a token stream.
type Parser struct {
	toks []Token
	pos  int
}

func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

// Parse lexes and parses a whole source file.
func Parse(src string) (*File, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return NewParser(toks).ParseFile()
}

func (p *Parser) at(off int) Token {
	if p.pos+off >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+off]
}

func (p *Parser) peek() Token { return p.at(0) }

func (p *Parser) advance() Token {
	t := p.at(0)
	if t.Kind != TokEOF {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k TokenKind) (Token, error) {
	t := p.peek()
	if t.Kind != k {
		return Token{}, fmt.Errorf("line %d: expected %s, found %s", t.Line, k, t)
	}
	return p.advance(), nil
}

// ParseFile parses a sequence of static method declarations.
func (p *Parser) ParseFile() (*File, error) {
	file := &File{}
	for p.peek().Kind != TokEOF {
		m, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		file.Methods = append(file.Methods, m)
	}
	return file, nil
}

func (p *Parser) parseMethod() (*MethodDecl, error) {
	kw, err := p.expect(TokStatic)
	if err != nil {
		return nil, err
	}
	result, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &MethodDecl{
		Result: TypeName{Name: result.Text, Line: result.Line},
		Name:   name.Text,
		Params: params,
		Body:   body,
		Line:   kw.Line,
	}, nil
}

func (p *Parser) parseParams() ([]Param, error) {
	var params []Param
	if p.peek().Kind == TokRParen {
		p.advance()
		return nil, nil
	}
	for {
		typ, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		name, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		params = append(params, Param{
			Type: TypeName{Name: typ.Text, Line: typ.Line},
			Name: name.Text,
			Line: typ.Line,
		})
		if p.peek().Kind != TokComma {
			break
		}
		p.advance()
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseBlock() (*Block, error) {
	open, err := p.expect(TokLBrace)
	if err != nil {
		return nil, err
	}
	block := &Block{Line: open.Line}
	for p.peek().Kind != TokRBrace {
		if p.peek().Kind == TokEOF {
			return nil, fmt.Errorf("line %d: unexpected end of file in block", open.Line)
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, s)
	}
	p.advance()
	return block, nil
}

func (p *Parser) parseStmt() (Stmt, error) {
	switch p.peek().Kind {
	case TokLBrace:
		return p.parseBlock()
	case TokIf:
		return p.parseIf()
	case TokSwitch:
		return p.parseSwitch()
	case TokReturn:
		return p.parseReturn()
	case TokBreak:
		kw := p.advance()
		if _, err := p.expect(TokSemi); err != nil {
			return nil, err
		}
		return &BreakStmt{Line: kw.Line}, nil
	case TokInc, TokDec:
		op := p.advance()
		name, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokSemi); err != nil {
			return nil, err
		}
		return &IncDecStmt{Name: name.Text, Op: op.Kind, Line: op.Line}, nil
	case TokIdent:
		switch p.at(1).Kind {
		case TokIdent:
			return p.parseVarDecl()
		case TokAssign:
			name := p.advance()
			p.advance()
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokSemi); err != nil {
				return nil, err
			}
			return &AssignStmt{Name: name.Text, Value: value, Line: name.Line}, nil
		case TokInc, TokDec:
			name := p.advance()
			op := p.advance()
			if _, err := p.expect(TokSemi); err != nil {
				return nil, err
			}
			return &IncDecStmt{Name: name.Text, Op: op.Kind, Line: name.Line}, nil
		}
	}
	return p.parseExprStmt()
}

func (p *Parser) parseExprStmt() (Stmt, error) {
	line := p.peek().Line
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	switch x.(type) {
	case *Call, *StaticCall, *MethodCall, *PrintCall:
	default:
		return nil, fmt.Errorf("line %d: not a statement", line)
	}
	if _, err := p.expect(TokSemi); err != nil {
		return nil, err
	}
	return &ExprStmt{X: x, Line: line}, nil
}

func (p *Parser) parseVarDecl() (Stmt, error) {
	typ := p.advance()
	name := p.advance()
	if p.peek().Kind == TokSemi {
		return nil, fmt.Errorf("line %d: variable %s declared without an initializer", name.Line, name.Text)
	}
	if _, err := p.expect(TokAssign); err != nil {
		return nil, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemi); err != nil {
		return nil, err
	}
	return &VarDecl{
		Type: TypeName{Name: typ.Text, Line: typ.Line},
		Name: name.Text,
		Init: init,
		Line: typ.Line,
	}, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	kw := p.advance()
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	then, err := p.parseBranch()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Cond: cond, Then: then, Line: kw.Line}
	if p.peek().Kind == TokElse {
		p.advance()
		if p.peek().Kind == TokIf {
			stmt.Else, err = p.parseIf()
		} else {
			stmt.Else, err = p.parseBranch()
		}
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// parseBranch parses an if/else branch: either a block or a single
// statement, which is wrapped in a block.
func (p *Parser) parseBranch() (*Block, error) {
	if p.peek().Kind == TokLBrace {
		return p.parseBlock()
	}
	s, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &Block{Stmts: []Stmt{s}, Line: s.Pos()}, nil
}

func (p *Parser) parseSwitch() (Stmt, error) {
	kw := p.advance()
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	tag, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}
	stmt := &SwitchStmt{Tag: tag, Line: kw.Line}
	for {
		switch p.peek().Kind {
		case TokCase:
			label := p.advance()
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokColon); err != nil {
				return nil, err
			}
			body, err := p.parseCaseBody()
			if err != nil {
				return nil, err
			}
			stmt.Cases = append(stmt.Cases, CaseClause{Value: value, Body: body, Line: label.Line})
		case TokDefault:
			label := p.advance()
			if _, err := p.expect(TokColon); err != nil {
				return nil, err
			}
			body, err := p.parseCaseBody()
			if err != nil {
				return nil, err
			}
			stmt.Cases = append(stmt.Cases, CaseClause{Default: true, Body: body, Line: label.Line})
		case TokRBrace:
			p.advance()
			return stmt, nil
		default:
			t := p.peek()
			return nil, fmt.Errorf("line %d: expected 'case' or 'default', found %s", t.Line, t)
		}
	}
}

func (p *Parser) parseCaseBody() ([]Stmt, error) {
	var body []Stmt
	for {
		switch p.peek().Kind {
		case TokCase, TokDefault, TokRBrace:
			return body, nil
		case TokEOF:
			t := p.peek()
			return nil, fmt.Errorf("line %d: unexpected end of file in switch", t.Line)
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
}

func (p *Parser) parseReturn() (Stmt, error) {
	kw := p.advance()
	stmt := &ReturnStmt{Line: kw.Line}
	if p.peek().Kind != TokSemi {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if _, err := p.expect(TokSemi); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Expression grammar, loosest binding first:
//
//	equality   := relational (("==" | "!=") relational)*
//	relational := additive (("<" | "<=" | ">" | ">=") additive)*
//	additive   := multiplicative (("+" | "-") multiplicative)*
//	multiplicative := unary (("*" | "/" | "%") unary)*
//	unary      := ("-" | "!") unary | postfix
//	postfix    := primary ("." ident "(" args ")")*
func (p *Parser) parseExpr() (Expr, error) {
	return p.parseEquality()
}

func (p *Parser) parseEquality() (Expr, error) {
	x, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokEq || p.peek().Kind == TokNe {
		op := p.advance()
		y, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		x = &Binary{Op: op.Kind, X: x, Y: y, Line: op.Line}
	}
	return x, nil
}

func (p *Parser) parseRelational() (Expr, error) {
	x, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case TokLt, TokLe, TokGt, TokGe:
			op := p.advance()
			y, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			x = &Binary{Op: op.Kind, X: x, Y: y, Line: op.Line}
		default:
			return x, nil
		}
	}
}

func (p *Parser) parseAdditive() (Expr, error) {
	x, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokPlus || p.peek().Kind == TokMinus {
		op := p.advance()
		y, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		x = &Binary{Op: op.Kind, X: x, Y: y, Line: op.Line}
	}
	return x, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case TokStar, TokSlash, TokPercent:
			op := p.advance()
			y, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			x = &Binary{Op: op.Kind, X: x, Y: y, Line: op.Line}
		default:
			return x, nil
		}
	}
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.peek().Kind == TokMinus || p.peek().Kind == TokNot {
		op := p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op.Kind, X: x, Line: op.Line}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokDot {
		p.advance()
		method, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokLParen); err != nil {
			return nil, err
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		x = &MethodCall{Recv: x, Method: method.Text, Args: args, Line: method.Line}
	}
	return x, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	t := p.peek()
	switch t.Kind {
	case TokInt:
		p.advance()
		n, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: integer literal too large: %s", t.Line, t.Text)
		}
		return &Literal{Kind: LitInt, Int: n, Line: t.Line}, nil
	case TokLong:
		p.advance()
		n, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: long literal too large: %s", t.Line, t.Text)
		}
		return &Literal{Kind: LitLong, Int: n, Line: t.Line}, nil
	case TokFloat:
		p.advance()
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: malformed float literal: %s", t.Line, t.Text)
		}
		return &Literal{Kind: LitFloat, Float: f, Line: t.Line}, nil
	case TokDouble:
		p.advance()
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: malformed double literal: %s", t.Line, t.Text)
		}
		return &Literal{Kind: LitDouble, Float: f, Line: t.Line}, nil
	case TokChar:
		p.advance()
		return &Literal{Kind: LitChar, Int: int64(t.Text[0]), Line: t.Line}, nil
	case TokString:
		p.advance()
		return &Literal{Kind: LitString, Str: t.Text, Line: t.Line}, nil
	case TokTrue:
		p.advance()
		return &Literal{Kind: LitBool, Bool: true, Line: t.Line}, nil
	case TokFalse:
		p.advance()
		return &Literal{Kind: LitBool, Bool: false, Line: t.Line}, nil
	case TokNull:
		p.advance()
		return &Literal{Kind: LitNull, Line: t.Line}, nil
	case TokLParen:
		p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return x, nil
	case TokIdent:
		if t.Text == "System" && p.at(1).Kind == TokDot {
			return p.parseSystemCall()
		}
		if classNames[t.Text] && p.at(1).Kind == TokDot {
			return p.parseStaticCall()
		}
		p.advance()
		if p.peek().Kind == TokLParen {
			p.advance()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &Call{Name: t.Text, Args: args, Line: t.Line}, nil
		}
		return &Ident{Name: t.Text, Line: t.Line}, nil
	}
	return nil, fmt.Errorf("line %d: unexpected %s", t.Line, t)
}

func (p *Parser) parseSystemCall() (Expr, error) {
	sys := p.advance()
	p.advance()
	field, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	if field.Text != "out" {
		return nil, fmt.Errorf("line %d: unknown System member %s", field.Line, field.Text)
	}
	if _, err := p.expect(TokDot); err != nil {
		return nil, err
	}
	method, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	if method.Text != "println" && method.Text != "print" {
		return nil, fmt.Errorf("line %d: unknown method System.out.%s", method.Line, method.Text)
	}
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return &PrintCall{Method: method.Text, Args: args, Line: sys.Line}, nil
}

func (p *Parser) parseStaticCall() (Expr, error) {
	class := p.advance()
	p.advance()
	method, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return &StaticCall{Class: class.Text, Method: method.Text, Args: args, Line: class.Line}, nil
}

func (p *Parser) parseArgs() ([]Expr, error) {
	if p.peek().Kind == TokRParen {
		p.advance()
		return nil, nil
	}
	var args []Expr
	for {
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, x)
		if p.peek().Kind != TokComma {
			break
		}
		p.advance()
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	return args, nil
}
