package ast

import (
	"github.com/funvibe/ofront/internal/token"
)

// Assignment represents target := value.
type Assignment struct {
	Base
	Token  token.Token // The ':=' token
	Target Expression
	Value  Expression
}

func (a *Assignment) statementNode()        {}
func (a *Assignment) GetToken() token.Token { return a.Token }

// WhileLoop represents while cond loop ... end.
type WhileLoop struct {
	Base
	Token     token.Token // The 'while' token
	Condition Expression
	Body      []Statement
}

func (w *WhileLoop) statementNode()        {}
func (w *WhileLoop) GetToken() token.Token { return w.Token }

// IfStatement represents if cond then ... [else ...] end.
type IfStatement struct {
	Base
	Token     token.Token // The 'if' token
	Condition Expression
	Then      []Statement
	Else      []Statement
}

func (i *IfStatement) statementNode()        {}
func (i *IfStatement) GetToken() token.Token { return i.Token }

// ReturnStatement represents return [value].
type ReturnStatement struct {
	Base
	Token token.Token // The 'return' token
	Value Expression  // nil for a bare return
}

func (r *ReturnStatement) statementNode()        {}
func (r *ReturnStatement) GetToken() token.Token { return r.Token }

// ExprStatement is an expression evaluated for its effect.
type ExprStatement struct {
	Base
	Expr Expression
}

func (e *ExprStatement) statementNode()        {}
func (e *ExprStatement) GetToken() token.Token { return e.Expr.GetToken() }
