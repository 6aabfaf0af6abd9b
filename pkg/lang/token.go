package lang

import "fmt"

// TokenKind identifies a lexical token class.
type TokenKind uint8

const (
	TokEOF TokenKind = iota
	TokIdent
	TokInt
	TokLong
	TokFloat
	TokDouble
	TokChar
	TokString

	// Keywords
	TokStatic
	TokIf
	TokElse
	TokSwitch
	TokCase
	TokDefault
	TokBreak
	TokReturn
	TokTrue
	TokFalse
	TokNull

	// Punctuation and operators
	TokLParen
	TokRParen
	TokLBrace
	TokRBrace
	TokComma
	TokSemi
	TokColon
	TokDot
	TokAssign
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokPercent
	TokNot
	TokLt
	TokLe
	TokGt
	TokGe
	TokEq
	TokNe
	TokInc
	TokDec
)

var tokenNames = map[TokenKind]string{
	TokEOF:     "end of file",
	TokIdent:   "identifier",
	TokInt:     "int literal",
	TokLong:    "long literal",
	TokFloat:   "float literal",
	TokDouble:  "double literal",
	TokChar:    "char literal",
	TokString:  "string literal",
	TokStatic:  "'static'",
	TokIf:      "'if'",
	TokElse:    "'else'",
	TokSwitch:  "'switch'",
	TokCase:    "'case'",
	TokDefault: "'default'",
	TokBreak:   "'break'",
	TokReturn:  "'return'",
	TokTrue:    "'true'",
	TokFalse:   "'false'",
	TokNull:    "'null'",
	TokLParen:  "'('",
	TokRParen:  "')'",
	TokLBrace:  "'{'",
	TokRBrace:  "'}'",
	TokComma:   "','",
	TokSemi:    "';'",
	TokColon:   "':'",
	TokDot:     "'.'",
	TokAssign:  "'='",
	TokPlus:    "'+'",
	TokMinus:   "'-'",
	TokStar:    "'*'",
	TokSlash:   "'/'",
	TokPercent: "'%'",
	TokNot:     "'!'",
	TokLt:      "'<'",
	TokLe:      "'<='",
	TokGt:      "'>'",
	TokGe:      "'>='",
	TokEq:      "'=='",
	TokNe:      "'!='",
	TokInc:     "'++'",
	TokDec:     "'--'",
}

func (k TokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", uint8(k))
}

var keywords = map[string]TokenKind{
	"static":  TokStatic,
	"if":      TokIf,
	"else":    TokElse,
	"switch":  TokSwitch,
	"case":    TokCase,
	"default": TokDefault,
	"break":   TokBreak,
	"return":  TokReturn,
	"true":    TokTrue,
	"false":   TokFalse,
	"null":    TokNull,
}

// Token is one lexical token with its source line.
type Token struct {
	Kind TokenKind
	Text string
	Line int
}

func (t Token) String() string {
	switch t.Kind {
	case TokIdent, TokInt, TokLong, TokFloat, TokDouble:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case TokChar:
		return fmt.Sprintf("char literal '%s'", t.Text)
	case TokString:
		return fmt.Sprintf("string literal %q", t.Text)
	}
	return t.Kind.String()
}
