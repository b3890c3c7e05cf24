package visitor

import "github.com/funvibe/ofront/internal/ast"

// Walk drives v over every file in order. Each top-level item of a file is
// an independent unit for Stop.
func Walk(v Visitor, files ...*ast.File) {
	for _, f := range files {
		walkFile(v, f)
	}
}

// WalkNode drives v over a single subtree, treating it as one top-level
// declaration.
func WalkNode(v Visitor, n ast.Node) {
	if n == nil {
		return
	}
	w := &walker{v: v}
	w.walk(n)
}

func walkFile(v Visitor, f *ast.File) {
	hook(f, func() { v.PreVisitFile(f) })
	d := Skip
	if !f.Has(ast.Broken) {
		hook(f, func() { d = v.VisitFile(f) })
	} else {
		d = v.BrokenDirective()
	}
	if d == Continue {
		for _, item := range f.Items {
			w := &walker{v: v}
			w.walk(item)
		}
	}
	hook(f, func() { v.PostVisitFile(f, d) })
}

type walker struct {
	v       Visitor
	stopped bool
}

func (w *walker) walk(n ast.Node) {
	if w.stopped || isNil(n) {
		return
	}
	hook(n, func() { pre(w.v, n) })

	var d Directive
	broken := n.Has(ast.Broken)
	if w.v.Order() == BottomUp {
		if !broken || w.v.BrokenDirective() == Continue {
			w.children(n)
		}
		if broken {
			d = w.v.BrokenDirective()
		} else if !w.stopped {
			hook(n, func() { d = visit(w.v, n) })
		}
	} else {
		if broken {
			d = w.v.BrokenDirective()
		} else {
			hook(n, func() { d = visit(w.v, n) })
		}
		if d == Continue {
			w.children(n)
		}
	}
	if d == Stop {
		w.stopped = true
	}
	hook(n, func() { post(w.v, n, d) })
}

func (w *walker) children(n ast.Node) {
	for _, c := range Children(n) {
		w.walk(c)
	}
}

// hook runs fn with the InVisitor flag raised on n.
func hook(n ast.Node, fn func()) {
	n.Set(ast.InVisitor)
	defer n.Clear(ast.InVisitor)
	fn()
}

// Children returns the children of n in traversal order.
func Children(n ast.Node) []ast.Node {
	var out []ast.Node
	add := func(c ast.Node) {
		if !isNil(c) {
			out = append(out, c)
		}
	}
	switch n := n.(type) {
	case *ast.File:
		out = append(out, n.Items...)
	case *ast.ClassDecl:
		for _, tp := range n.TypeParams {
			add(tp)
		}
		add(n.Super)
		out = append(out, n.Members...)
	case *ast.TypeRef:
		for _, a := range n.Args {
			add(a)
		}
	case *ast.FieldDecl:
		add(n.Value)
	case *ast.MethodDecl:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Result)
		for _, s := range n.Body {
			add(s)
		}
	case *ast.ConstructorDecl:
		for _, p := range n.Params {
			add(p)
		}
		for _, s := range n.Body {
			add(s)
		}
	case *ast.Param:
		add(n.TypeRef)
	case *ast.VarDecl:
		add(n.Value)
	case *ast.Assignment:
		add(n.Target)
		add(n.Value)
	case *ast.WhileLoop:
		add(n.Condition)
		for _, s := range n.Body {
			add(s)
		}
	case *ast.IfStatement:
		add(n.Condition)
		for _, s := range n.Then {
			add(s)
		}
		for _, s := range n.Else {
			add(s)
		}
	case *ast.ReturnStatement:
		add(n.Value)
	case *ast.ExprStatement:
		add(n.Expr)
	case *ast.Reference:
		for _, a := range n.TypeArgs {
			add(a)
		}
		for _, a := range n.Args {
			add(a)
		}
	case *ast.MemberAccess:
		add(n.Object)
		for _, a := range n.Args {
			add(a)
		}
	}
	return out
}

// isNil catches typed nil pointers stored in interfaces, such as an absent
// Super *TypeRef passed as an ast.Node.
func isNil(n ast.Node) bool {
	if n == nil {
		return true
	}
	switch n := n.(type) {
	case *ast.TypeRef:
		return n == nil
	}
	return false
}
