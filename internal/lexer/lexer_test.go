package lexer

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/funvibe/ofront/internal/token"
)

func types(toks []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestTokenizeClass(t *testing.T) {
	input := `class A extends B is
	var x : 1
	method get() : Integer is return this.x end
end`
	want := []token.TokenType{
		token.CLASS, token.IDENT, token.EXTENDS, token.IDENT, token.IS,
		token.VAR, token.IDENT, token.COLON, token.INT,
		token.METHOD, token.IDENT, token.LPAREN, token.RPAREN, token.COLON, token.IDENT, token.IS,
		token.RETURN, token.THIS, token.DOT, token.IDENT, token.END,
		token.END, token.EOF,
	}
	if diff := deep.Equal(types(Tokenize("a.ol", input)), want); diff != nil {
		t.Error(diff)
	}
}

func TestKeywordsAndOperators(t *testing.T) {
	input := "while loop if then else true false := : , . ( ) [ ]"
	want := []token.TokenType{
		token.WHILE, token.LOOP, token.IF, token.THEN, token.ELSE, token.TRUE, token.FALSE,
		token.ASSIGN, token.COLON, token.COMMA, token.DOT,
		token.LPAREN, token.RPAREN, token.LBRACKET, token.RBRACKET, token.EOF,
	}
	if diff := deep.Equal(types(Tokenize("", input)), want); diff != nil {
		t.Error(diff)
	}
}

func TestPositions(t *testing.T) {
	toks := Tokenize("p.ol", "var x\n  := 12")
	want := []token.Position{
		{File: "p.ol", Line: 1, Column: 1},
		{File: "p.ol", Line: 1, Column: 5},
		{File: "p.ol", Line: 2, Column: 3},
		{File: "p.ol", Line: 2, Column: 6},
	}
	for i, pos := range want {
		if diff := deep.Equal(toks[i].Position, pos); diff != nil {
			t.Errorf("token %d (%s): %v", i, toks[i].Lexeme, diff)
		}
	}
	if end := toks[2].End(); end.Column != 5 {
		t.Errorf(":= ends at column %d, want 5", end.Column)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input   string
		typ     token.TokenType
		literal interface{}
	}{
		{"42", token.INT, int64(42)},
		{"3.25", token.REAL, 3.25},
		{"99999999999999999999", token.ILLEGAL, "integer literal out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := Tokenize("", tt.input)[0]
			if tok.Type != tt.typ {
				t.Fatalf("type = %s, want %s", tok.Type, tt.typ)
			}
			if diff := deep.Equal(tok.Literal, tt.literal); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestIntegerFollowedByMember(t *testing.T) {
	// The dot is member access unless a digit follows it.
	want := []token.TokenType{token.INT, token.DOT, token.IDENT, token.EOF}
	if diff := deep.Equal(types(Tokenize("", "1.Plus")), want); diff != nil {
		t.Error(diff)
	}
}

func TestCommentsAndIllegal(t *testing.T) {
	toks := Tokenize("", "// a comment\nx // trailing\n# y")
	want := []token.TokenType{token.IDENT, token.ILLEGAL, token.IDENT, token.EOF}
	if diff := deep.Equal(types(toks), want); diff != nil {
		t.Fatal(diff)
	}
	if toks[0].Literal != "x" || toks[0].Line != 2 {
		t.Errorf("identifier = %v at line %d", toks[0].Literal, toks[0].Line)
	}
	if toks[1].Lexeme != "#" {
		t.Errorf("illegal lexeme = %q", toks[1].Lexeme)
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	toks := Tokenize("", "größe x")
	if toks[0].Type != token.IDENT || toks[0].Lexeme != "größe" {
		t.Fatalf("got %s %q", toks[0].Type, toks[0].Lexeme)
	}
	if toks[1].Column != 7 {
		t.Errorf("column after unicode identifier = %d, want 7", toks[1].Column)
	}
}
