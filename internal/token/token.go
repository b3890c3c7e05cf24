package token

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT TokenType = "IDENT"
	INT   TokenType = "INT"
	REAL  TokenType = "REAL"

	ASSIGN   TokenType = ":="
	COLON    TokenType = ":"
	COMMA    TokenType = ","
	DOT      TokenType = "."
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	CLASS   TokenType = "CLASS"
	EXTENDS TokenType = "EXTENDS"
	IS      TokenType = "IS"
	END     TokenType = "END"
	VAR     TokenType = "VAR"
	METHOD  TokenType = "METHOD"
	THIS    TokenType = "THIS"
	WHILE   TokenType = "WHILE"
	LOOP    TokenType = "LOOP"
	IF      TokenType = "IF"
	THEN    TokenType = "THEN"
	ELSE    TokenType = "ELSE"
	RETURN  TokenType = "RETURN"
	TRUE    TokenType = "TRUE"
	FALSE   TokenType = "FALSE"
)

var keywords = map[string]TokenType{
	"class":   CLASS,
	"extends": EXTENDS,
	"is":      IS,
	"end":     END,
	"var":     VAR,
	"method":  METHOD,
	"this":    THIS,
	"while":   WHILE,
	"loop":    LOOP,
	"if":      IF,
	"then":    THEN,
	"else":    ELSE,
	"return":  RETURN,
	"true":    TRUE,
	"false":   FALSE,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Position is a 1-based source location.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Before reports whether p precedes q in the same file.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// IsValid reports whether the position was ever set.
func (p Position) IsValid() bool {
	return p.Line > 0
}

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // int64 for INT, float64 for REAL, string for IDENT
	Position
}

// End returns the position just after the last character of the token.
func (t Token) End() Position {
	return Position{File: t.File, Line: t.Line, Column: t.Column + len(t.Lexeme)}
}
