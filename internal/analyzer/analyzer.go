package analyzer

import (
	"github.com/tliron/commonlog"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/prettyprinter"
	"github.com/funvibe/ofront/internal/symbols"
	"github.com/funvibe/ofront/internal/token"
	"github.com/funvibe/ofront/internal/typesystem"
	"github.com/funvibe/ofront/internal/visitor"
)

var log = commonlog.GetLogger("ofront.analyzer")

// Context carries the shared state of one compilation unit into every
// pass. Passes mutate the registries and the tree in place; nothing else is
// shared between them.
type Context struct {
	Tree      *ast.Tree
	Types     *symbols.TypeManager
	Scopes    *symbols.ScopeTable
	Overloads *symbols.OverloadRegistry
	Sink      diagnostics.Sink
}

func (c *Context) report(msg diagnostics.Message, w token.Window) {
	c.Sink.Diag(msg, w)
}

// bindInvalid binds a failed reference to the shared sentinel and flags it.
func (c *Context) bindInvalid(n ast.Bound) {
	if !n.IsBound() {
		n.Bind(c.Tree.Invalid().ID())
	}
	if !n.HasType() {
		n.SetType(typesystem.Invalid)
	}
	n.Set(ast.Broken)
}

// classType returns the resolved type of a class declaration, or Invalid
// when inheritance resolution never reached it.
func (c *Context) classType(decl *ast.ClassDecl) *typesystem.ClassType {
	if decl == nil || !decl.HasType() {
		return typesystem.Invalid
	}
	if t, ok := decl.Type().(*typesystem.ClassType); ok {
		return t
	}
	return typesystem.Invalid
}

// classRef returns the class a bare class name refers to, or nil when e is
// anything else.
func (c *Context) classRef(e ast.Expression) *ast.ClassDecl {
	ref, ok := e.(*ast.Reference)
	if !ok || ref.IsCall || !ref.IsBound() {
		return nil
	}
	return c.Tree.Class(ref.Target())
}

// valueOf returns the class of the value e produces. A call that returns
// nothing or a bare class name is reported and flags e Broken. Expressions
// that already failed yield Invalid silently.
func (c *Context) valueOf(e ast.Expression, context string) *typesystem.ClassType {
	if e == nil || !e.HasType() || e.Has(ast.Broken) {
		return typesystem.Invalid
	}
	t := e.Type()
	if t == typesystem.NoValue {
		c.report(diagnostics.NewNonReturningCallInExpr(describe(e)), e.Window())
		e.Set(ast.Broken)
		return typesystem.Invalid
	}
	if class := c.classRef(e); class != nil {
		c.report(diagnostics.NewTypeMismatch("a value", "class "+class.DeclName(), context), e.Window())
		e.Set(ast.Broken)
		return typesystem.Invalid
	}
	if v := typesystem.ValueOf(t); v != nil {
		return v
	}
	return typesystem.Invalid
}

func describe(n ast.Node) string {
	return prettyprinter.Format(n)
}

// Pass is one whole-tree analysis pass.
type Pass struct {
	Name string
	New  func(ctx *Context) visitor.Visitor
}

// Passes lists the analysis passes in the order they must run. Each pass
// relies on every mutation of the passes before it.
var Passes = []Pass{
	{"class collection", func(ctx *Context) visitor.Visitor { return NewClassCollector(ctx) }},
	{"inheritance resolution", func(ctx *Context) visitor.Visitor { return NewInheritanceResolver(ctx) }},
	{"reference resolution", func(ctx *Context) visitor.Visitor { return NewReferenceResolver(ctx) }},
	{"overload resolution", func(ctx *Context) visitor.Visitor { return NewOverloadResolver(ctx) }},
	{"local type checking", func(ctx *Context) visitor.Visitor { return NewLocalTypeChecker(ctx) }},
}

// Analyzer runs the passes over a unit's files.
type Analyzer struct {
	ctx *Context

	// Stop is consulted between passes; when it returns true the remaining
	// passes are skipped. Nil never stops.
	Stop func() bool
}

func New(ctx *Context) *Analyzer {
	return &Analyzer{ctx: ctx}
}

// Analyze runs every pass over files, in order. Built-in files must come
// first so that built-in names are known before user classes are collected.
func (a *Analyzer) Analyze(files []*ast.File) {
	for _, pass := range Passes {
		a.RunPass(pass, files)
		if a.Stop != nil && a.Stop() {
			log.Noticef("stopping after %s on first error", pass.Name)
			return
		}
	}
}

// RunPass runs a single pass over files. Passes are idempotent: running one
// again over an analysed tree registers nothing and reports nothing.
func (a *Analyzer) RunPass(pass Pass, files []*ast.File) {
	log.Debugf("%s: %d files", pass.Name, len(files))
	visitor.Walk(pass.New(a.ctx), files...)
}

// PassNamed returns the pass with the given name.
func PassNamed(name string) (Pass, bool) {
	for _, p := range Passes {
		if p.Name == name {
			return p, true
		}
	}
	return Pass{}, false
}
