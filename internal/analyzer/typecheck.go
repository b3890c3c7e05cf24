package analyzer

import (
	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/config"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/typesystem"
	"github.com/funvibe/ofront/internal/visitor"
)

// LocalTypeChecker validates statements against the types inferred by
// reference resolution: return values against the enclosing method,
// conditions against Boolean, assigned values against their targets.
// Types are compared by identifier only.
type LocalTypeChecker struct {
	visitor.Base
	ctx     *Context
	members []ast.Member
}

func NewLocalTypeChecker(ctx *Context) *LocalTypeChecker {
	return &LocalTypeChecker{ctx: ctx}
}

func (c *LocalTypeChecker) BrokenDirective() visitor.Directive { return visitor.Continue }

func (c *LocalTypeChecker) PreVisitFieldDecl(n *ast.FieldDecl) {
	c.members = append(c.members, n)
}

func (c *LocalTypeChecker) PreVisitMethodDecl(n *ast.MethodDecl) {
	c.members = append(c.members, n)
}

func (c *LocalTypeChecker) PreVisitConstructorDecl(n *ast.ConstructorDecl) {
	c.members = append(c.members, n)
}

func (c *LocalTypeChecker) PostVisitFieldDecl(*ast.FieldDecl, visitor.Directive) {
	c.pop()
}

func (c *LocalTypeChecker) PostVisitMethodDecl(*ast.MethodDecl, visitor.Directive) {
	c.pop()
}

func (c *LocalTypeChecker) PostVisitConstructorDecl(*ast.ConstructorDecl, visitor.Directive) {
	c.pop()
}

func (c *LocalTypeChecker) pop() { c.members = c.members[:len(c.members)-1] }

// Expressions hold no statements.

func (c *LocalTypeChecker) VisitIntegerLiteral(*ast.IntegerLiteral) visitor.Directive {
	return visitor.Skip
}

func (c *LocalTypeChecker) VisitRealLiteral(*ast.RealLiteral) visitor.Directive {
	return visitor.Skip
}

func (c *LocalTypeChecker) VisitBooleanLiteral(*ast.BooleanLiteral) visitor.Directive {
	return visitor.Skip
}

func (c *LocalTypeChecker) VisitThisExpr(*ast.ThisExpr) visitor.Directive {
	return visitor.Skip
}

func (c *LocalTypeChecker) VisitReference(*ast.Reference) visitor.Directive {
	return visitor.Skip
}

func (c *LocalTypeChecker) VisitMemberAccess(*ast.MemberAccess) visitor.Directive {
	return visitor.Skip
}

func (c *LocalTypeChecker) VisitTypeRef(*ast.TypeRef) visitor.Directive {
	return visitor.Skip
}

// expectedReturn is the type a return in the current member must produce.
// ok is false outside methods and constructors.
func (c *LocalTypeChecker) expectedReturn() (typesystem.Type, string, bool) {
	for i := len(c.members) - 1; i >= 0; i-- {
		switch m := c.members[i].(type) {
		case *ast.MethodDecl:
			if !m.HasType() {
				return nil, "", false
			}
			t, ok := m.Type().(typesystem.MethodType)
			if !ok {
				return nil, "", false
			}
			return t.Return, "return from method " + m.DeclName(), true
		case *ast.ConstructorDecl:
			return typesystem.NoValue, "return from constructor", true
		case *ast.FieldDecl:
			return nil, "", false
		}
	}
	return nil, "", false
}

func (c *LocalTypeChecker) VisitReturnStatement(n *ast.ReturnStatement) visitor.Directive {
	if n.Has(ast.AfterTypeCheck) {
		return visitor.Skip
	}
	n.Set(ast.AfterTypeCheck)

	expected, context, ok := c.expectedReturn()
	if !ok {
		c.ctx.report(diagnostics.NewTypeMismatch("no return", "return", "code outside of a method"), n.Window())
		n.Set(ast.Broken)
		return visitor.Skip
	}

	if n.Value == nil {
		if expected != typesystem.NoValue {
			c.ctx.report(diagnostics.NewTypeMismatch(expected.String(), "no value", context), n.Window())
			n.Set(ast.Broken)
		}
		return visitor.Skip
	}

	actual := c.ctx.valueOf(n.Value, context)
	if actual == typesystem.Invalid {
		if n.Value.Has(ast.Broken) {
			n.Set(ast.Broken)
		}
		return visitor.Skip
	}
	if expected == typesystem.NoValue {
		c.ctx.report(diagnostics.NewTypeMismatch("no value", actual.Name, context), n.Value.Window())
		n.Set(ast.Broken)
		return visitor.Skip
	}
	want := typesystem.ValueOf(expected)
	if want == nil || want == typesystem.Invalid {
		return visitor.Skip
	}
	if !typesystem.SameIdentifier(want, actual) {
		c.ctx.report(diagnostics.NewTypeMismatch(want.Name, actual.Name, context), n.Value.Window())
		n.Set(ast.Broken)
	}
	return visitor.Skip
}

func (c *LocalTypeChecker) VisitWhileLoop(n *ast.WhileLoop) visitor.Directive {
	c.condition(n, n.Condition, "while condition")
	return visitor.Continue
}

func (c *LocalTypeChecker) VisitIfStatement(n *ast.IfStatement) visitor.Directive {
	c.condition(n, n.Condition, "if condition")
	return visitor.Continue
}

func (c *LocalTypeChecker) condition(stmt ast.Node, cond ast.Expression, context string) {
	if stmt.Has(ast.AfterTypeCheck) {
		return
	}
	stmt.Set(ast.AfterTypeCheck)
	actual := c.ctx.valueOf(cond, context)
	if actual == typesystem.Invalid {
		return
	}
	if actual.Name != config.BooleanClassName {
		c.ctx.report(diagnostics.NewTypeMismatch(config.BooleanClassName, actual.Name, context), cond.Window())
		stmt.Set(ast.Broken)
	}
}

func (c *LocalTypeChecker) VisitAssignment(n *ast.Assignment) visitor.Directive {
	if n.Has(ast.AfterTypeCheck) {
		return visitor.Skip
	}
	n.Set(ast.AfterTypeCheck)

	target, ok := c.assignable(n.Target)
	if !ok {
		if n.Target != nil && !n.Target.Has(ast.Broken) {
			c.ctx.report(diagnostics.NewTypeMismatch("a variable, parameter or field", describe(n.Target), "assignment"), n.Target.Window())
			n.Set(ast.Broken)
		}
		return visitor.Skip
	}
	value := c.ctx.valueOf(n.Value, "assignment")
	if target == typesystem.Invalid || value == typesystem.Invalid {
		return visitor.Skip
	}
	if !typesystem.SameIdentifier(target, value) {
		c.ctx.report(diagnostics.NewTypeMismatch(target.Name, value.Name, "assignment to "+describe(n.Target)), n.Value.Window())
		n.Set(ast.Broken)
	}
	return visitor.Skip
}

// assignable returns the type of an assignment target that names a
// variable, parameter or field.
func (c *LocalTypeChecker) assignable(e ast.Expression) (*typesystem.ClassType, bool) {
	b, ok := e.(ast.Bound)
	if !ok || !b.IsBound() {
		return nil, false
	}
	if _, isThis := e.(*ast.ThisExpr); isThis {
		return nil, false
	}
	switch c.ctx.Tree.Decl(b.Target()).(type) {
	case *ast.VarDecl, *ast.Param, *ast.FieldDecl:
	default:
		return nil, false
	}
	if !b.HasType() {
		return typesystem.Invalid, true
	}
	if v := typesystem.ValueOf(b.Type()); v != nil {
		return v, true
	}
	return typesystem.Invalid, true
}
