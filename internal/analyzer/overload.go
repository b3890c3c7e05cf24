package analyzer

import (
	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/symbols"
	"github.com/funvibe/ofront/internal/visitor"
)

// OverloadResolver adds every method and constructor to its overload
// group. A member whose parameter types repeat those of an earlier live
// member of the group is reported and flagged Broken; the earlier one is
// kept.
type OverloadResolver struct {
	visitor.Base
	ctx *Context
}

func NewOverloadResolver(ctx *Context) *OverloadResolver {
	return &OverloadResolver{ctx: ctx}
}

// Members of broken classes are still grouped.
func (o *OverloadResolver) BrokenDirective() visitor.Directive { return visitor.Continue }

func (o *OverloadResolver) VisitMethodDecl(n *ast.MethodDecl) visitor.Directive {
	o.add(n, diagnostics.MethodVariant)
	return visitor.Skip
}

func (o *OverloadResolver) VisitConstructorDecl(n *ast.ConstructorDecl) visitor.Directive {
	o.add(n, diagnostics.ConstructorVariant)
	return visitor.Skip
}

func (o *OverloadResolver) add(n ast.Member, variant diagnostics.Variant) {
	conflicts := o.ctx.Overloads.Add(n)
	if len(conflicts) == 0 {
		return
	}
	o.ctx.report(
		diagnostics.NewOverloadConflict(variant, n.DeclName(), related(conflicts)),
		symbols.NameWindow(n),
	)
	n.Set(ast.Broken)
	log.Debugf("%s %s conflicts with %d earlier overloads", variant, n.DeclName(), len(conflicts))
}

func (o *OverloadResolver) VisitFieldDecl(*ast.FieldDecl) visitor.Directive {
	return visitor.Skip
}

func (o *OverloadResolver) VisitVarDecl(*ast.VarDecl) visitor.Directive {
	return visitor.Skip
}

func (o *OverloadResolver) VisitAssignment(*ast.Assignment) visitor.Directive {
	return visitor.Skip
}

func (o *OverloadResolver) VisitWhileLoop(*ast.WhileLoop) visitor.Directive {
	return visitor.Skip
}

func (o *OverloadResolver) VisitIfStatement(*ast.IfStatement) visitor.Directive {
	return visitor.Skip
}

func (o *OverloadResolver) VisitReturnStatement(*ast.ReturnStatement) visitor.Directive {
	return visitor.Skip
}

func (o *OverloadResolver) VisitExprStatement(*ast.ExprStatement) visitor.Directive {
	return visitor.Skip
}
