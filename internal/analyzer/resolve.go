package analyzer

import (
	"fmt"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/symbols"
	"github.com/funvibe/ofront/internal/token"
	"github.com/funvibe/ofront/internal/typesystem"
	"github.com/funvibe/ofront/internal/visitor"
)

// ReferenceResolver registers every member, parameter and local in the
// scope table, types every declaration and expression and binds every
// reference. Field types are inferred on demand, so a field may be used
// from a class declared before its own.
type ReferenceResolver struct {
	visitor.Base
	ctx *Context

	// members is the stack of enclosing class members, innermost last.
	members []ast.Member
}

func NewReferenceResolver(ctx *Context) *ReferenceResolver {
	return &ReferenceResolver{ctx: ctx}
}

// Broken declarations still have their contents resolved.
func (r *ReferenceResolver) BrokenDirective() visitor.Directive { return visitor.Continue }

func (r *ReferenceResolver) push(m ast.Member) { r.members = append(r.members, m) }
func (r *ReferenceResolver) pop()              { r.members = r.members[:len(r.members)-1] }

// member returns the innermost enclosing member, or nil outside classes.
func (r *ReferenceResolver) member() ast.Member {
	if len(r.members) == 0 {
		return nil
	}
	return r.members[len(r.members)-1]
}

// class returns the class enclosing the current position, or nil.
func (r *ReferenceResolver) class() *ast.ClassDecl {
	if m := r.member(); m != nil {
		return r.ctx.Tree.Class(m.Owner())
	}
	return nil
}

// Fields

func (r *ReferenceResolver) PreVisitFieldDecl(n *ast.FieldDecl) { r.push(n) }

func (r *ReferenceResolver) VisitFieldDecl(n *ast.FieldDecl) visitor.Directive {
	if n.HasType() {
		return visitor.Skip
	}
	n.Set(ast.InTypeCheck)
	return visitor.Continue
}

func (r *ReferenceResolver) PostVisitFieldDecl(n *ast.FieldDecl, _ visitor.Directive) {
	r.pop()
	if n.HasType() {
		return
	}
	n.Clear(ast.InTypeCheck)
	r.ctx.Scopes.Register(n)
	n.SetType(typesystem.FieldType{
		Owner: r.ctx.classType(r.ctx.Tree.Class(n.Owner())),
		Value: r.initializerType(n, n.Value),
	})
}

// ensureField returns the value type of f, inferring it first if the walk
// has not reached f yet. A field reached again while its own initializer
// is being inferred has no type, and the referencing node is broken.
func (r *ReferenceResolver) ensureField(f *ast.FieldDecl, ref ast.Node) *typesystem.ClassType {
	if f.HasType() {
		return typesystem.ValueOf(f.Type())
	}
	if f.Has(ast.InTypeCheck) {
		r.ctx.report(
			diagnostics.NewUnableToInferVariableType(f.DeclName(), "its initializer depends on "+f.DeclName()+" itself"),
			ref.Window(),
		)
		ref.Set(ast.Broken)
		return typesystem.Invalid
	}
	r.registerEarlierMembers(f)
	saved := r.members
	r.members = nil
	visitor.WalkNode(r, f)
	r.members = saved
	if !f.HasType() {
		return typesystem.Invalid
	}
	return typesystem.ValueOf(f.Type())
}

// registerEarlierMembers registers the fields and methods declared above f
// in its class, so an initializer inferred ahead of the walk sees the same
// names it would in order. Their types are still inferred on demand.
func (r *ReferenceResolver) registerEarlierMembers(f *ast.FieldDecl) {
	class := r.ctx.Tree.Class(f.Owner())
	if class == nil {
		return
	}
	for _, m := range class.Members {
		if m.ID() == f.ID() {
			return
		}
		switch m := m.(type) {
		case *ast.FieldDecl:
			r.ctx.Scopes.Register(m)
		case *ast.MethodDecl:
			if m.DeclName() != "" {
				r.methodType(m)
				r.ctx.Scopes.Register(m)
			}
		}
	}
}

// Locals

func (r *ReferenceResolver) VisitVarDecl(n *ast.VarDecl) visitor.Directive {
	if n.HasType() {
		return visitor.Skip
	}
	return visitor.Continue
}

func (r *ReferenceResolver) PostVisitVarDecl(n *ast.VarDecl, _ visitor.Directive) {
	if n.HasType() {
		return
	}
	r.ctx.Scopes.Register(n)
	n.SetType(typesystem.VarType{Value: r.initializerType(n, n.Value)})
}

// initializerType infers the class of a variable or field from its
// initializer.
func (r *ReferenceResolver) initializerType(decl ast.Decl, value ast.Expression) *typesystem.ClassType {
	if value == nil || !value.HasType() || value.Has(ast.Broken) {
		return typesystem.Invalid
	}
	t := value.Type()
	if t == typesystem.NoValue {
		r.ctx.report(
			diagnostics.NewUnableToInferVariableType(decl.DeclName(), describe(value)+" does not return a value"),
			value.Window(),
		)
		decl.Set(ast.Broken)
		return typesystem.Invalid
	}
	if class := r.ctx.classRef(value); class != nil {
		r.ctx.report(
			diagnostics.NewUnableToInferVariableType(decl.DeclName(), "class "+class.DeclName()+" is not a value; call a constructor instead"),
			value.Window(),
		)
		decl.Set(ast.Broken)
		return typesystem.Invalid
	}
	if v := typesystem.ValueOf(t); v != nil {
		return v
	}
	return typesystem.Invalid
}

// Methods and constructors

func (r *ReferenceResolver) PreVisitMethodDecl(n *ast.MethodDecl) {
	r.push(n)
	r.methodType(n)
	if n.DeclName() != "" {
		r.ctx.Scopes.Register(n)
	}
}

func (r *ReferenceResolver) PostVisitMethodDecl(*ast.MethodDecl, visitor.Directive) {
	r.pop()
}

func (r *ReferenceResolver) PreVisitConstructorDecl(n *ast.ConstructorDecl) {
	r.push(n)
	r.constructorType(n)
}

func (r *ReferenceResolver) PostVisitConstructorDecl(*ast.ConstructorDecl, visitor.Directive) {
	r.pop()
}

// methodType computes the signature of m from its declared parameter and
// result types. It does not look at the body, so it is safe to call for a
// method the walk has not reached yet.
func (r *ReferenceResolver) methodType(m *ast.MethodDecl) typesystem.MethodType {
	if m.HasType() {
		if t, ok := m.Type().(typesystem.MethodType); ok {
			return t
		}
	}
	t := typesystem.MethodType{
		Owner:  r.ctx.classType(r.ctx.Tree.Class(m.Owner())),
		Name:   m.DeclName(),
		Params: r.paramTypes(m.Params),
		Return: typesystem.NoValue,
	}
	if m.Result != nil {
		t.Return = r.resolveTypeRef(m.Result)
	}
	m.SetType(t)
	return t
}

func (r *ReferenceResolver) constructorType(c *ast.ConstructorDecl) typesystem.ConstructorType {
	if c.HasType() {
		if t, ok := c.Type().(typesystem.ConstructorType); ok {
			return t
		}
	}
	t := typesystem.ConstructorType{
		Owner:  r.ctx.classType(r.ctx.Tree.Class(c.Owner())),
		Params: r.paramTypes(c.Params),
	}
	c.SetType(t)
	return t
}

func (r *ReferenceResolver) paramTypes(params []*ast.Param) []*typesystem.ClassType {
	out := make([]*typesystem.ClassType, len(params))
	for i, p := range params {
		out[i] = r.ensureParam(p)
	}
	return out
}

// Parameters

func (r *ReferenceResolver) PostVisitParam(n *ast.Param, _ visitor.Directive) {
	r.ensureParam(n)
	r.ctx.Scopes.Register(n)
}

func (r *ReferenceResolver) ensureParam(p *ast.Param) *typesystem.ClassType {
	if p.HasType() {
		return typesystem.ValueOf(p.Type())
	}
	v := typesystem.Invalid
	if p.TypeRef != nil {
		v = r.resolveTypeRef(p.TypeRef)
	}
	p.SetType(typesystem.ParamType{Value: v})
	return v
}

// Type references

func (r *ReferenceResolver) VisitTypeRef(n *ast.TypeRef) visitor.Directive {
	r.resolveTypeRef(n)
	return visitor.Skip
}

// resolveTypeRef types a type name and its arguments. Each type reference
// is checked once.
func (r *ReferenceResolver) resolveTypeRef(n *ast.TypeRef) *typesystem.ClassType {
	if n.Has(ast.AfterTypeCheck) {
		if n.HasType() {
			return typesystem.ValueOf(n.Type())
		}
		return typesystem.Invalid
	}
	n.Set(ast.AfterTypeCheck)

	for _, arg := range n.Args {
		r.resolveTypeRef(arg)
	}

	// A super type reference is already typed by inheritance resolution.
	if n.HasType() {
		if decl, ok := r.ctx.Types.Definition(n.Name.Lexeme); ok {
			r.checkTypeArgs(decl, n.Args, n.Window())
		}
		return typesystem.ValueOf(n.Type())
	}

	name := n.Name.Lexeme
	decl, ok := r.ctx.Types.Definition(name)
	if !ok {
		r.ctx.report(diagnostics.NewUndefinedReference(name, "no class named "+name), token.WindowOf(n.Name))
		n.Set(ast.Broken)
		n.SetType(typesystem.Invalid)
		return typesystem.Invalid
	}
	t := r.ctx.classType(decl)
	n.SetType(t)
	r.checkTypeArgs(decl, n.Args, n.Window())
	return t
}

// checkTypeArgs rejects type arguments: user classes cannot be generic and
// no built-in class takes any. A user class that declares type parameters
// was already reported when it was collected.
func (r *ReferenceResolver) checkTypeArgs(decl *ast.ClassDecl, args []*ast.TypeRef, w token.Window) {
	if len(args) == 0 {
		return
	}
	if len(decl.TypeParams) > 0 {
		return
	}
	if decl.Has(ast.BuiltIn) {
		r.ctx.report(
			diagnostics.NewTypeMismatch("no type arguments", fmt.Sprintf("%d type arguments", len(args)), "use of class "+decl.DeclName()),
			w,
		)
		return
	}
	r.ctx.report(diagnostics.NewUnsupportedUserDefinedGenericClass(decl.DeclName()), w)
}

// declaredBefore reports whether decl may be referenced from use: a
// variable or field once its initializer has ended, a method once its name
// has been seen. Declarations of other files are always visible.
func declaredBefore(decl ast.Node, use token.Position) bool {
	w := decl.Window()
	if w.Start.File != use.File {
		return true
	}
	switch d := decl.(type) {
	case *ast.VarDecl, *ast.FieldDecl:
		return !use.Before(w.End)
	case *ast.MethodDecl:
		return !use.Before(d.Name.Position)
	default:
		return true
	}
}

// related lists declarations for a diagnostic.
func related[T ast.Node](decls []T) []diagnostics.Related {
	out := make([]diagnostics.Related, len(decls))
	for i, d := range decls {
		out[i] = symbols.RelatedOf(d)
	}
	return out
}
