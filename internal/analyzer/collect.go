package analyzer

import (
	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/prettyprinter"
	"github.com/funvibe/ofront/internal/symbols"
	"github.com/funvibe/ofront/internal/token"
	"github.com/funvibe/ofront/internal/visitor"
)

// ClassCollector registers every class name with the type registry and
// rejects redefinitions. It never descends into class members.
type ClassCollector struct {
	visitor.Base
	ctx *Context
}

func NewClassCollector(ctx *Context) *ClassCollector {
	return &ClassCollector{ctx: ctx}
}

func (c *ClassCollector) VisitClassDecl(n *ast.ClassDecl) visitor.Directive {
	types := c.ctx.Types
	if types.Knows(n) {
		return visitor.Skip
	}

	name := n.DeclName()
	if types.IsBuiltIn(name) {
		c.ctx.report(diagnostics.NewBuiltInClassRedefinition(name), symbols.NameWindow(n))
		n.Set(ast.Broken)
	} else if earlier, ok := types.UserDefinition(name); ok {
		c.ctx.report(
			diagnostics.NewDeclRedefinition(name, symbols.RelatedOf(earlier), prettyprinter.Header(earlier)),
			symbols.NameWindow(n),
		)
		n.Set(ast.Broken)
	}

	if len(n.TypeParams) > 0 && !n.Has(ast.BuiltIn) {
		first, last := n.TypeParams[0], n.TypeParams[len(n.TypeParams)-1]
		c.ctx.report(
			diagnostics.NewUnsupportedUserDefinedGenericClass(name),
			token.Span(first.Window(), last.Window()),
		)
		for _, tp := range n.TypeParams {
			tp.Set(ast.Broken)
		}
	}

	types.LearnDecl(n)
	log.Debugf("collected class %s", name)
	return visitor.Skip
}

// Top-level statements declare no classes.

func (c *ClassCollector) VisitVarDecl(*ast.VarDecl) visitor.Directive {
	return visitor.Skip
}

func (c *ClassCollector) VisitAssignment(*ast.Assignment) visitor.Directive {
	return visitor.Skip
}

func (c *ClassCollector) VisitWhileLoop(*ast.WhileLoop) visitor.Directive {
	return visitor.Skip
}

func (c *ClassCollector) VisitIfStatement(*ast.IfStatement) visitor.Directive {
	return visitor.Skip
}

func (c *ClassCollector) VisitReturnStatement(*ast.ReturnStatement) visitor.Directive {
	return visitor.Skip
}

func (c *ClassCollector) VisitExprStatement(*ast.ExprStatement) visitor.Directive {
	return visitor.Skip
}
