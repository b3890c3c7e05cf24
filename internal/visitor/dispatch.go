package visitor

import "github.com/funvibe/ofront/internal/ast"

// The three functions below are the double dispatch of the visitor: the
// driver matches the concrete kind and calls the matching hook.
func pre(v Visitor, n ast.Node) {
	switch n := n.(type) {
	case *ast.File:
		v.PreVisitFile(n)
	case *ast.ClassDecl:
		v.PreVisitClassDecl(n)
	case *ast.TypeParam:
		v.PreVisitTypeParam(n)
	case *ast.TypeRef:
		v.PreVisitTypeRef(n)
	case *ast.FieldDecl:
		v.PreVisitFieldDecl(n)
	case *ast.MethodDecl:
		v.PreVisitMethodDecl(n)
	case *ast.ConstructorDecl:
		v.PreVisitConstructorDecl(n)
	case *ast.Param:
		v.PreVisitParam(n)
	case *ast.VarDecl:
		v.PreVisitVarDecl(n)
	case *ast.Assignment:
		v.PreVisitAssignment(n)
	case *ast.WhileLoop:
		v.PreVisitWhileLoop(n)
	case *ast.IfStatement:
		v.PreVisitIfStatement(n)
	case *ast.ReturnStatement:
		v.PreVisitReturnStatement(n)
	case *ast.ExprStatement:
		v.PreVisitExprStatement(n)
	case *ast.IntegerLiteral:
		v.PreVisitIntegerLiteral(n)
	case *ast.RealLiteral:
		v.PreVisitRealLiteral(n)
	case *ast.BooleanLiteral:
		v.PreVisitBooleanLiteral(n)
	case *ast.ThisExpr:
		v.PreVisitThisExpr(n)
	case *ast.Reference:
		v.PreVisitReference(n)
	case *ast.MemberAccess:
		v.PreVisitMemberAccess(n)
	}
}

func visit(v Visitor, n ast.Node) Directive {
	switch n := n.(type) {
	case *ast.File:
		return v.VisitFile(n)
	case *ast.ClassDecl:
		return v.VisitClassDecl(n)
	case *ast.TypeParam:
		return v.VisitTypeParam(n)
	case *ast.TypeRef:
		return v.VisitTypeRef(n)
	case *ast.FieldDecl:
		return v.VisitFieldDecl(n)
	case *ast.MethodDecl:
		return v.VisitMethodDecl(n)
	case *ast.ConstructorDecl:
		return v.VisitConstructorDecl(n)
	case *ast.Param:
		return v.VisitParam(n)
	case *ast.VarDecl:
		return v.VisitVarDecl(n)
	case *ast.Assignment:
		return v.VisitAssignment(n)
	case *ast.WhileLoop:
		return v.VisitWhileLoop(n)
	case *ast.IfStatement:
		return v.VisitIfStatement(n)
	case *ast.ReturnStatement:
		return v.VisitReturnStatement(n)
	case *ast.ExprStatement:
		return v.VisitExprStatement(n)
	case *ast.IntegerLiteral:
		return v.VisitIntegerLiteral(n)
	case *ast.RealLiteral:
		return v.VisitRealLiteral(n)
	case *ast.BooleanLiteral:
		return v.VisitBooleanLiteral(n)
	case *ast.ThisExpr:
		return v.VisitThisExpr(n)
	case *ast.Reference:
		return v.VisitReference(n)
	case *ast.MemberAccess:
		return v.VisitMemberAccess(n)
	}
	return Skip
}

func post(v Visitor, n ast.Node, d Directive) {
	switch n := n.(type) {
	case *ast.File:
		v.PostVisitFile(n, d)
	case *ast.ClassDecl:
		v.PostVisitClassDecl(n, d)
	case *ast.TypeParam:
		v.PostVisitTypeParam(n, d)
	case *ast.TypeRef:
		v.PostVisitTypeRef(n, d)
	case *ast.FieldDecl:
		v.PostVisitFieldDecl(n, d)
	case *ast.MethodDecl:
		v.PostVisitMethodDecl(n, d)
	case *ast.ConstructorDecl:
		v.PostVisitConstructorDecl(n, d)
	case *ast.Param:
		v.PostVisitParam(n, d)
	case *ast.VarDecl:
		v.PostVisitVarDecl(n, d)
	case *ast.Assignment:
		v.PostVisitAssignment(n, d)
	case *ast.WhileLoop:
		v.PostVisitWhileLoop(n, d)
	case *ast.IfStatement:
		v.PostVisitIfStatement(n, d)
	case *ast.ReturnStatement:
		v.PostVisitReturnStatement(n, d)
	case *ast.ExprStatement:
		v.PostVisitExprStatement(n, d)
	case *ast.IntegerLiteral:
		v.PostVisitIntegerLiteral(n, d)
	case *ast.RealLiteral:
		v.PostVisitRealLiteral(n, d)
	case *ast.BooleanLiteral:
		v.PostVisitBooleanLiteral(n, d)
	case *ast.ThisExpr:
		v.PostVisitThisExpr(n, d)
	case *ast.Reference:
		v.PostVisitReference(n, d)
	case *ast.MemberAccess:
		v.PostVisitMemberAccess(n, d)
	}
}
