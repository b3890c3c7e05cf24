package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/ofront/internal/token"
)

type Lexer struct {
	file         string
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(file, input string) *Lexer {
	l := &Lexer{file: file, input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize returns the flat token sequence of input, terminated by EOF.
// Characters outside the grammar become ILLEGAL tokens; reporting them is
// the parser's job.
func Tokenize(file, input string) []token.Token {
	l := New(file, input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case ':':
		if l.peekChar() == '=' {
			line, col := l.line, l.column
			l.readChar()
			tok = l.makeToken(token.ASSIGN, ":=", line, col)
		} else {
			tok = l.charToken(token.COLON)
		}
	case ',':
		tok = l.charToken(token.COMMA)
	case '.':
		tok = l.charToken(token.DOT)
	case '(':
		tok = l.charToken(token.LPAREN)
	case ')':
		tok = l.charToken(token.RPAREN)
	case '[':
		tok = l.charToken(token.LBRACKET)
	case ']':
		tok = l.charToken(token.RBRACKET)
	case 0:
		tok = l.makeToken(token.EOF, "", l.line, l.column)
		return tok
	default:
		if isLetter(l.ch) {
			line, col := l.line, l.column
			ident := l.readIdentifier()
			tok = l.makeToken(token.LookupIdent(ident), ident, line, col)
			if tok.Type == token.IDENT {
				tok.Literal = ident
			}
			return tok
		} else if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.charToken(token.ILLEGAL)
	}

	l.readChar()
	return tok
}

func (l *Lexer) makeToken(t token.TokenType, lexeme string, line, col int) token.Token {
	return token.Token{
		Type:     t,
		Lexeme:   lexeme,
		Position: token.Position{File: l.file, Line: line, Column: col},
	}
}

func (l *Lexer) charToken(t token.TokenType) token.Token {
	return l.makeToken(t, string(l.ch), l.line, l.column)
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() token.Token {
	startLine, startCol := l.line, l.column
	position := l.position
	isReal := false

	for isDigit(l.ch) {
		l.readChar()
	}

	// A dot followed by a digit makes a real; otherwise the dot is member access.
	if l.ch == '.' && isDigit(l.peekChar()) {
		isReal = true
		l.readChar() // .
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	lexeme := l.input[position:l.position]
	tok := l.makeToken(token.INT, lexeme, startLine, startCol)

	if isReal {
		val, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			tok.Type = token.ILLEGAL
			tok.Literal = err.Error()
			return tok
		}
		tok.Type = token.REAL
		tok.Literal = val
		return tok
	}

	val, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		tok.Type = token.ILLEGAL
		tok.Literal = "integer literal out of range"
		return tok
	}
	tok.Literal = val
	return tok
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		// Handle comments
		if l.ch == '/' && l.peekChar() == '/' {
			l.readChar() // consume first /
			l.readChar() // consume second /
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}
