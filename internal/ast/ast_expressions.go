package ast

import (
	"github.com/funvibe/ofront/internal/token"
)

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	Base
	TypeSlot
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// RealLiteral represents a real literal.
type RealLiteral struct {
	Base
	TypeSlot
	Token token.Token
	Value float64
}

func (rl *RealLiteral) expressionNode()       {}
func (rl *RealLiteral) GetToken() token.Token { return rl.Token }

// BooleanLiteral represents true or false.
type BooleanLiteral struct {
	Base
	TypeSlot
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }

// ThisExpr represents the 'this' keyword used as a value. It binds to the
// enclosing class declaration.
type ThisExpr struct {
	Base
	TypeSlot
	Binding
	Token token.Token
}

func (t *ThisExpr) expressionNode()       {}
func (t *ThisExpr) GetToken() token.Token { return t.Token }

// Reference is an identifier used as a value, optionally with type
// arguments and a call argument list: x, foo(1), Integer(5), List[Integer]().
// When it names a class and carries arguments it is a constructor call and
// Constructor records the chosen constructor (unset for the implicit one).
type Reference struct {
	Base
	TypeSlot
	Binding
	Name        token.Token
	TypeArgs    []*TypeRef
	Args        []Expression
	IsCall      bool
	Constructor Binding
}

func (r *Reference) expressionNode()       {}
func (r *Reference) GetToken() token.Token { return r.Name }

// MemberAccess is object.member, optionally called: a.x, this.foo(1).
type MemberAccess struct {
	Base
	TypeSlot
	Binding
	Object Expression
	Dot    token.Token
	Member token.Token // IDENT, or THIS for the illegal a.this
	Args   []Expression
	IsCall bool
}

func (m *MemberAccess) expressionNode()       {}
func (m *MemberAccess) GetToken() token.Token { return m.Member }
