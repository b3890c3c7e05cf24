// Package visitor is the traversal engine shared by every analysis pass.
//
// A Visitor exposes three hooks per concrete node kind. PreVisit runs before
// descent, Visit carries the pass logic and returns a Directive, PostVisit
// runs after descent and receives that directive. The driver in walk.go owns
// recursion and child order; node types know nothing about visitors.
package visitor

import "github.com/funvibe/ofront/internal/ast"

// Directive tells the driver how to continue after a Visit hook.
type Directive int

const (
	// Continue descends into the node's children.
	Continue Directive = iota
	// Skip prunes the node's children but continues with its siblings.
	Skip
	// Stop abandons the rest of the current top-level declaration.
	Stop
)

func (d Directive) String() string {
	switch d {
	case Skip:
		return "Skip"
	case Stop:
		return "Stop"
	default:
		return "Continue"
	}
}

// Order selects when Visit runs relative to the children.
type Order int

const (
	// TopDown visits a node before its children.
	TopDown Order = iota
	// BottomUp visits a node after its children. Directives can no longer
	// prune, but Stop still ends the current top-level declaration.
	BottomUp
)

// Visitor is implemented by every pass. Embed Base to inherit no-op hooks.
type Visitor interface {
	// BrokenDirective is returned in place of Visit for Broken nodes.
	BrokenDirective() Directive
	Order() Order

	PreVisitFile(n *ast.File)
	VisitFile(n *ast.File) Directive
	PostVisitFile(n *ast.File, d Directive)

	PreVisitClassDecl(n *ast.ClassDecl)
	VisitClassDecl(n *ast.ClassDecl) Directive
	PostVisitClassDecl(n *ast.ClassDecl, d Directive)

	PreVisitTypeParam(n *ast.TypeParam)
	VisitTypeParam(n *ast.TypeParam) Directive
	PostVisitTypeParam(n *ast.TypeParam, d Directive)

	PreVisitTypeRef(n *ast.TypeRef)
	VisitTypeRef(n *ast.TypeRef) Directive
	PostVisitTypeRef(n *ast.TypeRef, d Directive)

	PreVisitFieldDecl(n *ast.FieldDecl)
	VisitFieldDecl(n *ast.FieldDecl) Directive
	PostVisitFieldDecl(n *ast.FieldDecl, d Directive)

	PreVisitMethodDecl(n *ast.MethodDecl)
	VisitMethodDecl(n *ast.MethodDecl) Directive
	PostVisitMethodDecl(n *ast.MethodDecl, d Directive)

	PreVisitConstructorDecl(n *ast.ConstructorDecl)
	VisitConstructorDecl(n *ast.ConstructorDecl) Directive
	PostVisitConstructorDecl(n *ast.ConstructorDecl, d Directive)

	PreVisitParam(n *ast.Param)
	VisitParam(n *ast.Param) Directive
	PostVisitParam(n *ast.Param, d Directive)

	PreVisitVarDecl(n *ast.VarDecl)
	VisitVarDecl(n *ast.VarDecl) Directive
	PostVisitVarDecl(n *ast.VarDecl, d Directive)

	PreVisitAssignment(n *ast.Assignment)
	VisitAssignment(n *ast.Assignment) Directive
	PostVisitAssignment(n *ast.Assignment, d Directive)

	PreVisitWhileLoop(n *ast.WhileLoop)
	VisitWhileLoop(n *ast.WhileLoop) Directive
	PostVisitWhileLoop(n *ast.WhileLoop, d Directive)

	PreVisitIfStatement(n *ast.IfStatement)
	VisitIfStatement(n *ast.IfStatement) Directive
	PostVisitIfStatement(n *ast.IfStatement, d Directive)

	PreVisitReturnStatement(n *ast.ReturnStatement)
	VisitReturnStatement(n *ast.ReturnStatement) Directive
	PostVisitReturnStatement(n *ast.ReturnStatement, d Directive)

	PreVisitExprStatement(n *ast.ExprStatement)
	VisitExprStatement(n *ast.ExprStatement) Directive
	PostVisitExprStatement(n *ast.ExprStatement, d Directive)

	PreVisitIntegerLiteral(n *ast.IntegerLiteral)
	VisitIntegerLiteral(n *ast.IntegerLiteral) Directive
	PostVisitIntegerLiteral(n *ast.IntegerLiteral, d Directive)

	PreVisitRealLiteral(n *ast.RealLiteral)
	VisitRealLiteral(n *ast.RealLiteral) Directive
	PostVisitRealLiteral(n *ast.RealLiteral, d Directive)

	PreVisitBooleanLiteral(n *ast.BooleanLiteral)
	VisitBooleanLiteral(n *ast.BooleanLiteral) Directive
	PostVisitBooleanLiteral(n *ast.BooleanLiteral, d Directive)

	PreVisitThisExpr(n *ast.ThisExpr)
	VisitThisExpr(n *ast.ThisExpr) Directive
	PostVisitThisExpr(n *ast.ThisExpr, d Directive)

	PreVisitReference(n *ast.Reference)
	VisitReference(n *ast.Reference) Directive
	PostVisitReference(n *ast.Reference, d Directive)

	PreVisitMemberAccess(n *ast.MemberAccess)
	VisitMemberAccess(n *ast.MemberAccess) Directive
	PostVisitMemberAccess(n *ast.MemberAccess, d Directive)
}

// Base provides default hooks: pre and post do nothing, Visit continues,
// Broken nodes are skipped and the order is top-down.
type Base struct{}

func (Base) BrokenDirective() Directive { return Skip }
func (Base) Order() Order               { return TopDown }

func (Base) PreVisitFile(*ast.File)             {}
func (Base) VisitFile(*ast.File) Directive { return Continue }
func (Base) PostVisitFile(*ast.File, Directive) {}

func (Base) PreVisitClassDecl(*ast.ClassDecl)             {}
func (Base) VisitClassDecl(*ast.ClassDecl) Directive { return Continue }
func (Base) PostVisitClassDecl(*ast.ClassDecl, Directive) {}

func (Base) PreVisitTypeParam(*ast.TypeParam)             {}
func (Base) VisitTypeParam(*ast.TypeParam) Directive { return Continue }
func (Base) PostVisitTypeParam(*ast.TypeParam, Directive) {}

func (Base) PreVisitTypeRef(*ast.TypeRef)             {}
func (Base) VisitTypeRef(*ast.TypeRef) Directive { return Continue }
func (Base) PostVisitTypeRef(*ast.TypeRef, Directive) {}

func (Base) PreVisitFieldDecl(*ast.FieldDecl)             {}
func (Base) VisitFieldDecl(*ast.FieldDecl) Directive { return Continue }
func (Base) PostVisitFieldDecl(*ast.FieldDecl, Directive) {}

func (Base) PreVisitMethodDecl(*ast.MethodDecl)             {}
func (Base) VisitMethodDecl(*ast.MethodDecl) Directive { return Continue }
func (Base) PostVisitMethodDecl(*ast.MethodDecl, Directive) {}

func (Base) PreVisitConstructorDecl(*ast.ConstructorDecl)             {}
func (Base) VisitConstructorDecl(*ast.ConstructorDecl) Directive { return Continue }
func (Base) PostVisitConstructorDecl(*ast.ConstructorDecl, Directive) {}

func (Base) PreVisitParam(*ast.Param)             {}
func (Base) VisitParam(*ast.Param) Directive { return Continue }
func (Base) PostVisitParam(*ast.Param, Directive) {}

func (Base) PreVisitVarDecl(*ast.VarDecl)             {}
func (Base) VisitVarDecl(*ast.VarDecl) Directive { return Continue }
func (Base) PostVisitVarDecl(*ast.VarDecl, Directive) {}

func (Base) PreVisitAssignment(*ast.Assignment)             {}
func (Base) VisitAssignment(*ast.Assignment) Directive { return Continue }
func (Base) PostVisitAssignment(*ast.Assignment, Directive) {}

func (Base) PreVisitWhileLoop(*ast.WhileLoop)             {}
func (Base) VisitWhileLoop(*ast.WhileLoop) Directive { return Continue }
func (Base) PostVisitWhileLoop(*ast.WhileLoop, Directive) {}

func (Base) PreVisitIfStatement(*ast.IfStatement)             {}
func (Base) VisitIfStatement(*ast.IfStatement) Directive { return Continue }
func (Base) PostVisitIfStatement(*ast.IfStatement, Directive) {}

func (Base) PreVisitReturnStatement(*ast.ReturnStatement)             {}
func (Base) VisitReturnStatement(*ast.ReturnStatement) Directive { return Continue }
func (Base) PostVisitReturnStatement(*ast.ReturnStatement, Directive) {}

func (Base) PreVisitExprStatement(*ast.ExprStatement)             {}
func (Base) VisitExprStatement(*ast.ExprStatement) Directive { return Continue }
func (Base) PostVisitExprStatement(*ast.ExprStatement, Directive) {}

func (Base) PreVisitIntegerLiteral(*ast.IntegerLiteral)             {}
func (Base) VisitIntegerLiteral(*ast.IntegerLiteral) Directive { return Continue }
func (Base) PostVisitIntegerLiteral(*ast.IntegerLiteral, Directive) {}

func (Base) PreVisitRealLiteral(*ast.RealLiteral)             {}
func (Base) VisitRealLiteral(*ast.RealLiteral) Directive { return Continue }
func (Base) PostVisitRealLiteral(*ast.RealLiteral, Directive) {}

func (Base) PreVisitBooleanLiteral(*ast.BooleanLiteral)             {}
func (Base) VisitBooleanLiteral(*ast.BooleanLiteral) Directive { return Continue }
func (Base) PostVisitBooleanLiteral(*ast.BooleanLiteral, Directive) {}

func (Base) PreVisitThisExpr(*ast.ThisExpr)             {}
func (Base) VisitThisExpr(*ast.ThisExpr) Directive { return Continue }
func (Base) PostVisitThisExpr(*ast.ThisExpr, Directive) {}

func (Base) PreVisitReference(*ast.Reference)             {}
func (Base) VisitReference(*ast.Reference) Directive { return Continue }
func (Base) PostVisitReference(*ast.Reference, Directive) {}

func (Base) PreVisitMemberAccess(*ast.MemberAccess)             {}
func (Base) VisitMemberAccess(*ast.MemberAccess) Directive { return Continue }
func (Base) PostVisitMemberAccess(*ast.MemberAccess, Directive) {}
