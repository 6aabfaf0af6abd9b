package lang

import (
	"fmt"
	"strings"
)

// Lexer turns source text into tokens. Line and block comments are
// skipped; digits may be grouped with underscores as in Java.
type Lexer struct {
	src  string
	pos  int
	line int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Lex tokenizes a whole source text.
func Lex(src string) ([]Token, error) {
	lx := NewLexer(src)
	var toks []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks, nil
		}
	}
}

func (lx *Lexer) errf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", lx.line, fmt.Sprintf(format, args...))
}

func (lx *Lexer) peek() byte {
	if lx.pos >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *Lexer) peek2() byte {
	if lx.pos+1 >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+1]
}

func (lx *Lexer) advance() byte {
	c := lx.src[lx.pos]
	lx.pos++
	if c == '\n' {
		lx.line++
	}
	return c
}

// Next returns the next token.
func (lx *Lexer) Next() (Token, error) {
	if err := lx.skipSpaceAndComments(); err != nil {
		return Token{}, err
	}
	if lx.pos >= len(lx.src) {
		return Token{Kind: TokEOF, Line: lx.line}, nil
	}

	line := lx.line
	c := lx.peek()

	switch {
	case isDigit(c):
		return lx.lexNumber()
	case isAlpha(c):
		return lx.lexWord()
	}

	lx.advance()
	switch c {
	case '\'':
		return lx.lexChar(line)
	case '"':
		return lx.lexString(line)
	case '(':
		return Token{Kind: TokLParen, Line: line}, nil
	case ')':
		return Token{Kind: TokRParen, Line: line}, nil
	case '{':
		return Token{Kind: TokLBrace, Line: line}, nil
	case '}':
		return Token{Kind: TokRBrace, Line: line}, nil
	case ',':
		return Token{Kind: TokComma, Line: line}, nil
	case ';':
		return Token{Kind: TokSemi, Line: line}, nil
	case ':':
		return Token{Kind: TokColon, Line: line}, nil
	case '.':
		return Token{Kind: TokDot, Line: line}, nil
	case '*':
		return Token{Kind: TokStar, Line: line}, nil
	case '/':
		return Token{Kind: TokSlash, Line: line}, nil
	case '%':
		return Token{Kind: TokPercent, Line: line}, nil
	case '+':
		if lx.peek() == '+' {
			lx.advance()
			return Token{Kind: TokInc, Line: line}, nil
		}
		return Token{Kind: TokPlus, Line: line}, nil
	case '-':
		if lx.peek() == '-' {
			lx.advance()
			return Token{Kind: TokDec, Line: line}, nil
		}
		return Token{Kind: TokMinus, Line: line}, nil
	case '=':
		if lx.peek() == '=' {
			lx.advance()
			return Token{Kind: TokEq, Line: line}, nil
		}
		return Token{Kind: TokAssign, Line: line}, nil
	case '!':
		if lx.peek() == '=' {
			lx.advance()
			return Token{Kind: TokNe, Line: line}, nil
		}
		return Token{Kind: TokNot, Line: line}, nil
	case '<':
		if lx.peek() == '=' {
			lx.advance()
			return Token{Kind: TokLe, Line: line}, nil
		}
		return Token{Kind: TokLt, Line: line}, nil
	case '>':
		if lx.peek() == '=' {
			lx.advance()
			return Token{Kind: TokGe, Line: line}, nil
		}
		return Token{Kind: TokGt, Line: line}, nil
	}
	return Token{}, lx.errf("unexpected character %q", c)
}

func (lx *Lexer) skipSpaceAndComments() error {
	for lx.pos < len(lx.src) {
		c := lx.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			lx.advance()
		case c == '/' && lx.peek2() == '/':
			for lx.pos < len(lx.src) && lx.peek() != '\n' {
				lx.advance()
			}
		case c == '/' && lx.peek2() == '*':
			open := lx.line
			lx.advance()
			lx.advance()
			for {
				if lx.pos >= len(lx.src) {
					return fmt.Errorf("line %d: unterminated block comment", open)
				}
				if lx.peek() == '*' && lx.peek2() == '/' {
					lx.advance()
					lx.advance()
					break
				}
				lx.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

func (lx *Lexer) lexNumber() (Token, error) {
	line := lx.line
	start := lx.pos
	for lx.pos < len(lx.src) && (isDigit(lx.peek()) || lx.peek() == '_') {
		lx.advance()
	}

	kind := TokInt
	if lx.peek() == '.' && isDigit(lx.peek2()) {
		kind = TokDouble
		lx.advance()
		for lx.pos < len(lx.src) && (isDigit(lx.peek()) || lx.peek() == '_') {
			lx.advance()
		}
	}

	text := strings.ReplaceAll(lx.src[start:lx.pos], "_", "")

	switch lx.peek() {
	case 'l', 'L':
		if kind == TokDouble {
			return Token{}, lx.errf("malformed long literal %s", text)
		}
		lx.advance()
		kind = TokLong
	case 'f', 'F':
		lx.advance()
		kind = TokFloat
	case 'd', 'D':
		lx.advance()
		kind = TokDouble
	}

	return Token{Kind: kind, Text: text, Line: line}, nil
}

func (lx *Lexer) lexWord() (Token, error) {
	line := lx.line
	start := lx.pos
	for lx.pos < len(lx.src) && (isAlpha(lx.peek()) || isDigit(lx.peek())) {
		lx.advance()
	}
	word := lx.src[start:lx.pos]
	if kind, ok := keywords[word]; ok {
		return Token{Kind: kind, Text: word, Line: line}, nil
	}
	return Token{Kind: TokIdent, Text: word, Line: line}, nil
}

func (lx *Lexer) lexChar(line int) (Token, error) {
	if lx.pos >= len(lx.src) {
		return Token{}, lx.errf("unterminated char literal")
	}
	c := lx.advance()
	if c == '\\' {
		esc, err := lx.unescape()
		if err != nil {
			return Token{}, err
		}
		c = esc
	} else if c == '\'' || c == '\n' {
		return Token{}, lx.errf("empty char literal")
	}
	if lx.pos >= len(lx.src) || lx.advance() != '\'' {
		return Token{}, lx.errf("unterminated char literal")
	}
	return Token{Kind: TokChar, Text: string(c), Line: line}, nil
}

func (lx *Lexer) lexString(line int) (Token, error) {
	var sb strings.Builder
	for {
		if lx.pos >= len(lx.src) {
			return Token{}, fmt.Errorf("line %d: unterminated string literal", line)
		}
		c := lx.advance()
		switch c {
		case '"':
			return Token{Kind: TokString, Text: sb.String(), Line: line}, nil
		case '\n':
			return Token{}, fmt.Errorf("line %d: unterminated string literal", line)
		case '\\':
			esc, err := lx.unescape()
			if err != nil {
				return Token{}, err
			}
			sb.WriteByte(esc)
		default:
			sb.WriteByte(c)
		}
	}
}

func (lx *Lexer) unescape() (byte, error) {
	if lx.pos >= len(lx.src) {
		return 0, lx.errf("unterminated escape sequence")
	}
	c := lx.advance()
	switch c {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return 0, nil
	case '\'', '"', '\\':
		return c, nil
	}
	return 0, lx.errf("unknown escape sequence \\%c", c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}
