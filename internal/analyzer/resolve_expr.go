package analyzer

import (
	"fmt"
	"strings"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/config"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/token"
	"github.com/funvibe/ofront/internal/typesystem"
	"github.com/funvibe/ofront/internal/visitor"
)

// Literals

func (r *ReferenceResolver) VisitIntegerLiteral(n *ast.IntegerLiteral) visitor.Directive {
	r.literal(n, config.IntegerClassName)
	return visitor.Skip
}

func (r *ReferenceResolver) VisitRealLiteral(n *ast.RealLiteral) visitor.Directive {
	r.literal(n, config.RealClassName)
	return visitor.Skip
}

func (r *ReferenceResolver) VisitBooleanLiteral(n *ast.BooleanLiteral) visitor.Directive {
	r.literal(n, config.BooleanClassName)
	return visitor.Skip
}

func (r *ReferenceResolver) literal(n ast.Typed, class string) {
	if !n.HasType() {
		n.SetType(r.ctx.Types.BuiltInType(class))
	}
}

// this

func (r *ReferenceResolver) VisitThisExpr(n *ast.ThisExpr) visitor.Directive {
	if n.IsBound() {
		return visitor.Skip
	}
	class := r.class()
	if class == nil {
		r.ctx.report(diagnostics.NewThisOutOfContext("outside of a class"), n.Window())
		r.ctx.bindInvalid(n)
		return visitor.Skip
	}
	n.Bind(class.ID())
	n.SetType(r.ctx.classType(class))
	return visitor.Skip
}

// Names

func (r *ReferenceResolver) VisitReference(n *ast.Reference) visitor.Directive {
	if n.IsBound() {
		return visitor.Skip
	}
	return visitor.Continue
}

func (r *ReferenceResolver) PostVisitReference(n *ast.Reference, _ visitor.Directive) {
	if n.IsBound() {
		return
	}
	name := n.Name.Lexeme
	use := n.Name.Position

	// Variables, parameters and fields.
	if decl, ok := r.ctx.Scopes.ResolveWhere(name, n.Scope(), func(d ast.Decl) bool {
		return declaredBefore(d, use)
	}); ok {
		if n.IsCall {
			r.ctx.report(diagnostics.NewUndefinedReference(name, name+" is not a method"), token.WindowOf(n.Name))
			r.ctx.bindInvalid(n)
			return
		}
		n.Bind(decl.ID())
		n.SetType(r.valueOfDecl(decl, n))
		return
	}

	// Methods of the enclosing classes.
	if methods := r.visibleMethods(name, n); len(methods) > 0 {
		if !n.IsCall {
			r.ctx.report(diagnostics.NewMethodReferenceWithoutCall(name), token.WindowOf(n.Name))
			r.ctx.bindInvalid(n)
			return
		}
		r.callMethod(n, name, methods, n.Args)
		return
	}

	// Classes and constructor calls.
	if class, ok := r.ctx.Types.Definition(name); ok {
		r.checkTypeArgs(class, n.TypeArgs, n.Window())
		if n.IsCall {
			r.callConstructor(n, class)
			return
		}
		n.Bind(class.ID())
		n.SetType(r.ctx.classType(class))
		return
	}

	r.ctx.report(diagnostics.NewUndefinedReference(name, r.laterDeclaration(name, n)), token.WindowOf(n.Name))
	r.ctx.bindInvalid(n)
}

// valueOfDecl is the class of the value a variable, parameter or field
// holds.
func (r *ReferenceResolver) valueOfDecl(decl ast.Decl, ref ast.Node) *typesystem.ClassType {
	switch d := decl.(type) {
	case *ast.FieldDecl:
		return r.ensureField(d, ref)
	case *ast.Param:
		return r.ensureParam(d)
	}
	if decl.HasType() {
		if v := typesystem.ValueOf(decl.Type()); v != nil {
			return v
		}
	}
	return typesystem.Invalid
}

// visibleMethods returns the overloads a bare method name refers to: those
// declared in the enclosing scopes before the use, or else those of the
// nearest super class that has any.
func (r *ReferenceResolver) visibleMethods(name string, n *ast.Reference) []*ast.MethodDecl {
	var out []*ast.MethodDecl
	for _, m := range r.ctx.Scopes.ResolveMethods(name, n.Scope()) {
		if declaredBefore(m, n.Name.Position) {
			out = append(out, m)
		}
	}
	if len(out) > 0 {
		return out
	}
	class := r.class()
	if class == nil {
		return nil
	}
	for _, super := range r.ctx.classType(class).Chain()[1:] {
		if decl := r.ctx.Tree.Class(super.Decl); decl != nil {
			if found := decl.Methods(name); len(found) > 0 {
				return found
			}
		}
	}
	return nil
}

// laterDeclaration explains a name that exists but is not yet visible.
func (r *ReferenceResolver) laterDeclaration(name string, n *ast.Reference) string {
	if _, ok := r.ctx.Scopes.Resolve(name, n.Scope()); ok {
		return name + " is declared after its use"
	}
	if class := r.class(); class != nil {
		if class.Field(name) != nil || len(class.Methods(name)) > 0 {
			return name + " is declared after its use"
		}
	}
	return ""
}

// Member access

func (r *ReferenceResolver) VisitMemberAccess(n *ast.MemberAccess) visitor.Directive {
	if n.IsBound() {
		return visitor.Skip
	}
	return visitor.Continue
}

func (r *ReferenceResolver) PostVisitMemberAccess(n *ast.MemberAccess, _ visitor.Directive) {
	if n.IsBound() {
		return
	}
	if n.Member.Type == token.THIS {
		r.ctx.report(diagnostics.NewThisOutOfContext("as the target of a member access"), token.WindowOf(n.Member))
		r.ctx.bindInvalid(n)
		return
	}
	name := n.Member.Lexeme
	if name == "" {
		// The parser already reported the missing member name.
		r.ctx.bindInvalid(n)
		return
	}
	if n.Object == nil {
		r.ctx.bindInvalid(n)
		return
	}
	if class := r.ctx.classRef(n.Object); class != nil {
		r.ctx.report(diagnostics.NewMemberAccessOnClass(class.DeclName(), name), n.Window())
		r.ctx.bindInvalid(n)
		return
	}

	object := r.ctx.valueOf(n.Object, "member access")
	if object == typesystem.Invalid {
		r.ctx.bindInvalid(n)
		return
	}

	// Inside its own class, this.x obeys declaration order.
	_, viaThis := n.Object.(*ast.ThisExpr)
	for _, t := range object.Chain() {
		decl := r.ctx.Tree.Class(t.Decl)
		if decl == nil {
			continue
		}
		ordered := viaThis && t == object
		if f := decl.Field(name); f != nil {
			if ordered && !declaredBefore(f, n.Member.Position) {
				break
			}
			if n.IsCall {
				r.ctx.report(diagnostics.NewUndefinedReference(name, name+" is a field of class "+decl.DeclName()+", not a method"), token.WindowOf(n.Member))
				r.ctx.bindInvalid(n)
				return
			}
			n.Bind(f.ID())
			n.SetType(r.ensureField(f, n))
			return
		}
		methods := decl.Methods(name)
		if ordered {
			methods = filterDeclaredBefore(methods, n.Member.Position)
		}
		if len(methods) > 0 {
			if !n.IsCall {
				r.ctx.report(diagnostics.NewMethodReferenceWithoutCall(name), token.WindowOf(n.Member))
				r.ctx.bindInvalid(n)
				return
			}
			r.callMethod(n, name, methods, n.Args)
			return
		}
	}

	r.ctx.report(
		diagnostics.NewUndefinedReference(name, fmt.Sprintf("class %s has no member named %s before this use", object.Name, name)),
		token.WindowOf(n.Member),
	)
	r.ctx.bindInvalid(n)
}

func filterDeclaredBefore(methods []*ast.MethodDecl, use token.Position) []*ast.MethodDecl {
	var out []*ast.MethodDecl
	for _, m := range methods {
		if declaredBefore(m, use) {
			out = append(out, m)
		}
	}
	return out
}

// Calls

// argTypes returns the classes of the call arguments; ok is false when an
// argument already failed.
func (r *ReferenceResolver) argTypes(args []ast.Expression, callee string) ([]*typesystem.ClassType, bool) {
	out := make([]*typesystem.ClassType, len(args))
	ok := true
	for i, a := range args {
		out[i] = r.ctx.valueOf(a, "argument of "+callee)
		if out[i] == typesystem.Invalid {
			ok = false
		}
	}
	return out, ok
}

// accepts reports whether params take args positionally, by identifier.
func (r *ReferenceResolver) accepts(params []*ast.Param, args []*typesystem.ClassType) bool {
	if len(params) != len(args) {
		return false
	}
	for i, p := range params {
		if !typesystem.SameIdentifier(r.ensureParam(p), args[i]) {
			return false
		}
	}
	return true
}

// callMethod selects the first overload accepting the arguments; methods
// come most-derived first, in declaration order.
func (r *ReferenceResolver) callMethod(n ast.Bound, name string, methods []*ast.MethodDecl, args []ast.Expression) {
	types, ok := r.argTypes(args, name)
	if !ok {
		r.ctx.bindInvalid(n)
		return
	}
	for _, m := range methods {
		if r.accepts(m.Params, types) {
			n.Bind(m.ID())
			n.SetType(r.methodType(m).Return)
			return
		}
	}
	r.ctx.report(
		diagnostics.NewOverloadNoMatch(diagnostics.MethodVariant, name, joinNames(types), related(methods)),
		n.Window(),
	)
	r.ctx.bindInvalid(n)
}

// callConstructor binds a constructor call to its class and records the
// chosen constructor. A class without constructors has an implicit one
// taking no arguments.
func (r *ReferenceResolver) callConstructor(n *ast.Reference, class *ast.ClassDecl) {
	name := class.DeclName()
	types, ok := r.argTypes(n.Args, name)
	if !ok {
		r.ctx.bindInvalid(n)
		return
	}
	ctors := class.Constructors()
	if len(ctors) == 0 && len(types) == 0 {
		n.Bind(class.ID())
		n.SetType(r.ctx.classType(class))
		return
	}
	for _, c := range ctors {
		if r.accepts(c.Params, types) {
			r.constructorType(c)
			n.Bind(class.ID())
			n.Constructor.Bind(c.ID())
			n.SetType(r.ctx.classType(class))
			return
		}
	}
	r.ctx.report(
		diagnostics.NewOverloadNoMatch(diagnostics.ConstructorVariant, name, joinNames(types), related(ctors)),
		n.Window(),
	)
	r.ctx.bindInvalid(n)
}

func joinNames(types []*typesystem.ClassType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
