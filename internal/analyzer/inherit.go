package analyzer

import (
	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/config"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/token"
	"github.com/funvibe/ofront/internal/typesystem"
	"github.com/funvibe/ofront/internal/visitor"
)

// InheritanceResolver builds the super-type chain of every class and
// reports cycles. Supers declared later are resolved first, recursively.
type InheritanceResolver struct {
	visitor.Base
	ctx   *Context
	chain []string // classes entered and not yet resolved, outermost first
}

func NewInheritanceResolver(ctx *Context) *InheritanceResolver {
	return &InheritanceResolver{ctx: ctx}
}

func (r *InheritanceResolver) VisitClassDecl(n *ast.ClassDecl) visitor.Directive {
	r.resolve(n)
	return visitor.Skip
}

func (r *InheritanceResolver) VisitVarDecl(*ast.VarDecl) visitor.Directive {
	return visitor.Skip
}

func (r *InheritanceResolver) VisitAssignment(*ast.Assignment) visitor.Directive {
	return visitor.Skip
}

func (r *InheritanceResolver) VisitWhileLoop(*ast.WhileLoop) visitor.Directive {
	return visitor.Skip
}

func (r *InheritanceResolver) VisitIfStatement(*ast.IfStatement) visitor.Directive {
	return visitor.Skip
}

func (r *InheritanceResolver) VisitReturnStatement(*ast.ReturnStatement) visitor.Directive {
	return visitor.Skip
}

func (r *InheritanceResolver) VisitExprStatement(*ast.ExprStatement) visitor.Directive {
	return visitor.Skip
}

// resolve returns the type of n, resolving its supers first. A class still
// being resolved when it is reached again closes a cycle.
func (r *InheritanceResolver) resolve(n *ast.ClassDecl) *typesystem.ClassType {
	if n.HasType() {
		return r.ctx.classType(n)
	}

	n.Set(ast.InTypeCheck)
	r.chain = append(r.chain, n.DeclName())
	defer func() {
		n.Clear(ast.InTypeCheck)
		r.chain = r.chain[:len(r.chain)-1]
	}()

	super := r.superOf(n)
	if n.Super != nil && !n.Super.HasType() {
		n.Super.SetType(super)
	}

	t := &typesystem.ClassType{
		Decl:    n.ID(),
		Name:    n.DeclName(),
		Super:   super,
		BuiltIn: n.Has(ast.BuiltIn),
	}
	n.SetType(t)
	r.ctx.Types.LearnType(t)
	log.Debugf("class %s extends %s", t.Name, super)
	return t
}

func (r *InheritanceResolver) superOf(n *ast.ClassDecl) *typesystem.ClassType {
	if n.Super == nil {
		if n.DeclName() == config.RootClassName && n.Has(ast.BuiltIn) {
			return nil
		}
		root, ok := r.ctx.Types.BuiltInDefinition(config.AnyValueClassName)
		if !ok {
			return typesystem.Invalid
		}
		return r.resolve(root)
	}

	name := n.Super.Name.Lexeme
	decl, ok := r.ctx.Types.Definition(name)
	if !ok {
		r.ctx.report(diagnostics.NewUndefinedReference(name, "no class named "+name), token.WindowOf(n.Super.Name))
		n.Set(ast.Broken)
		n.Super.Set(ast.Broken)
		return typesystem.Invalid
	}
	if decl.Has(ast.InTypeCheck) {
		r.ctx.report(diagnostics.NewRecursiveInheritance(r.chain, name), token.WindowOf(n.Super.Name))
		n.Set(ast.Broken)
		return typesystem.Invalid
	}
	return r.resolve(decl)
}
