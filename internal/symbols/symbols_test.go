package symbols_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/config"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/lexer"
	"github.com/funvibe/ofront/internal/parser"
	"github.com/funvibe/ofront/internal/symbols"
	"github.com/funvibe/ofront/internal/typesystem"
	"github.com/funvibe/ofront/internal/visitor"
)

func parse(t *testing.T, tree *ast.Tree, input string) *ast.File {
	t.Helper()
	f, errs := parser.Parse(tree, "test.ol", lexer.Tokenize("test.ol", input))
	if len(errs) > 0 {
		t.Fatalf("syntax errors: %v", errors.Join(errs...))
	}
	return f
}

func names(decls []*ast.MethodDecl) []string {
	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = d.Params[0].Name.Lexeme
	}
	return out
}

// ---------------------------------------------------------------------------
// TypeManager
// ---------------------------------------------------------------------------

func TestTypeManagerBootstrap(t *testing.T) {
	tree := ast.NewTree()
	tm, err := symbols.NewTypeManager(tree, parser.Frontend{})
	if err != nil {
		t.Fatal(err)
	}
	if got := len(tm.BuiltInFiles()); got != len(config.BuiltInClassNames) {
		t.Fatalf("%d built-in files, want %d", got, len(config.BuiltInClassNames))
	}
	if tm.Len() != len(config.BuiltInClassNames) {
		t.Errorf("Len = %d", tm.Len())
	}
	for _, name := range config.BuiltInClassNames {
		decl, ok := tm.BuiltInDefinition(name)
		if !ok || !tm.IsBuiltIn(name) || !tm.Knows(decl) {
			t.Errorf("built-in %s not registered", name)
			continue
		}
		if tm.HasUserDefinition(name) {
			t.Errorf("built-in %s has a user definition", name)
		}
	}
	for _, f := range tm.BuiltInFiles() {
		if !f.BuiltIn {
			t.Errorf("%s not marked built-in", f.Path)
		}
		var unflagged []string
		var check func(n ast.Node)
		check = func(n ast.Node) {
			if !n.Has(ast.BuiltIn) {
				unflagged = append(unflagged, prettyName(n))
			}
			for _, c := range visitor.Children(n) {
				check(c)
			}
		}
		check(f)
		if len(unflagged) > 0 {
			t.Errorf("%s: nodes without BuiltIn: %v", f.Path, unflagged)
		}
	}
}

func prettyName(n ast.Node) string {
	if d, ok := n.(ast.Decl); ok {
		return d.DeclName()
	}
	return n.GetToken().Lexeme
}

func TestTypeManagerUserDefinitions(t *testing.T) {
	tree := ast.NewTree()
	tm, err := symbols.NewTypeManager(tree, parser.Frontend{})
	if err != nil {
		t.Fatal(err)
	}
	f := parse(t, tree, "class A is end\nclass A is end\nclass Integer is end")
	first := f.Items[0].(*ast.ClassDecl)
	second := f.Items[1].(*ast.ClassDecl)
	shadow := f.Items[2].(*ast.ClassDecl)
	for _, c := range []*ast.ClassDecl{first, second, shadow} {
		tm.LearnDecl(c)
	}

	if d, ok := tm.UserDefinition("A"); !ok || d != first {
		t.Error("first declaration is not the definition")
	}
	if !tm.Knows(second) {
		t.Error("second declaration unknown")
	}
	if d, _ := tm.Definition("Integer"); d == shadow {
		t.Error("user class shadows the built-in")
	}
	if d, _ := tm.Definition("A"); d != first {
		t.Error("Definition(A)")
	}
	if _, ok := tm.Definition("Missing"); ok {
		t.Error("Definition of an undeclared class")
	}
}

func TestTypeManagerTypes(t *testing.T) {
	tm, err := symbols.NewTypeManager(ast.NewTree(), parser.Frontend{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = tm.Type("A")
	var notFound *typesystem.TypeNotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "A" {
		t.Fatalf("Type before LearnType: %v", err)
	}

	a := &typesystem.ClassType{Name: "A"}
	tm.LearnType(a)
	if got, err := tm.Type("A"); err != nil || got != a || !tm.HasType("A") {
		t.Fatalf("Type(A) = %v, %v", got, err)
	}

	func() {
		defer func() {
			r := recover()
			var woe *typesystem.WriteOnceError
			if err, ok := r.(error); !ok || !errors.As(err, &woe) {
				t.Errorf("second LearnType: recovered %v", r)
			}
		}()
		tm.LearnType(&typesystem.ClassType{Name: "A"})
	}()

	func() {
		defer func() {
			if recover() == nil {
				t.Error("BuiltInType before resolution did not panic")
			}
		}()
		tm.BuiltInType(config.IntegerClassName)
	}()
}

type failingFrontend struct{ err error }

func (f failingFrontend) Parse(*ast.Tree, string, string) (*ast.File, error) {
	return &ast.File{}, f.err
}

func TestTypeManagerBootstrapErrors(t *testing.T) {
	_, err := symbols.NewTypeManager(ast.NewTree(), failingFrontend{err: errors.New("boom")})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("frontend error not propagated: %v", err)
	}
	_, err = symbols.NewTypeManager(ast.NewTree(), failingFrontend{})
	if err == nil || !strings.Contains(err.Error(), "declares no class") {
		t.Errorf("empty built-in source accepted: %v", err)
	}
}

// ---------------------------------------------------------------------------
// ScopeTable
// ---------------------------------------------------------------------------

func TestScopeTableRedefinition(t *testing.T) {
	tree := ast.NewTree()
	diags := diagnostics.NewCollector()
	st := symbols.NewScopeTable(tree, diags)
	f := parse(t, tree, "var x : 1\nvar x : 2")
	first := f.Items[0].(*ast.VarDecl)
	second := f.Items[1].(*ast.VarDecl)

	if !st.Register(first) || !st.Register(second) {
		t.Fatal("Register refused a new declaration")
	}
	if st.Register(second) {
		t.Error("second Register of the same node reported true")
	}
	if diags.Len() != 1 || diags.All()[0].Kind != diagnostics.DeclRedefinition {
		t.Fatalf("diagnostics:\n%s", diags.Summary())
	}
	d := diags.All()[0]
	if d.Window.Start.Line != 2 {
		t.Errorf("reported at line %d, want 2", d.Window.Start.Line)
	}
	if len(d.Related) != 1 || d.Related[0].Window.Start.Line != 1 {
		t.Errorf("related = %+v", d.Related)
	}
	if !second.Has(ast.Broken) || first.Has(ast.Broken) {
		t.Error("wrong declaration flagged Broken")
	}
	if got, _ := st.Resolve("x", second.Scope()); got != first {
		t.Error("Resolve did not return the first declaration")
	}
}

func TestScopeTableVisibility(t *testing.T) {
	tree := ast.NewTree()
	diags := diagnostics.NewCollector()
	st := symbols.NewScopeTable(tree, diags)
	f := parse(t, tree, `var top : 1
class A is
	var field : 2
	method m(p : Integer) is
		var local : 3
	end
	method m(q : Real) is end
end`)
	top := f.Items[0].(*ast.VarDecl)
	class := f.Items[1].(*ast.ClassDecl)
	field := class.Members[0].(*ast.FieldDecl)
	m1 := class.Members[1].(*ast.MethodDecl)
	m2 := class.Members[2].(*ast.MethodDecl)
	param := m1.Params[0]
	local := m1.Body[0].(*ast.VarDecl)
	for _, d := range []ast.Decl{top, field, m1, m2, param, local} {
		st.Register(d)
	}
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diags.Summary())
	}

	inBody := local.Scope()
	for _, name := range []string{"top", "field", "p", "local", "m"} {
		if !st.Visible(name, inBody) {
			t.Errorf("%s not visible in the method body", name)
		}
	}
	if st.Visible("local", field.Scope()) || st.Visible("p", m2.Params[0].Scope()) {
		t.Error("inner declarations leak outwards or sideways")
	}
	if diff := deep.Equal(names(st.ResolveMethods("m", inBody)), []string{"p", "q"}); diff != nil {
		t.Error(diff)
	}
	if got := st.ResolveMethods("m", top.Scope()); got != nil {
		t.Errorf("methods visible at the root: %v", got)
	}

	onlyFields := func(d ast.Decl) bool { _, ok := d.(*ast.FieldDecl); return ok }
	if got, ok := st.ResolveWhere("field", inBody, onlyFields); !ok || got != field {
		t.Error("ResolveWhere rejected the field")
	}
	if _, ok := st.ResolveWhere("top", inBody, onlyFields); ok {
		t.Error("ResolveWhere ignored the filter")
	}
	if !st.Registered(local) || st.Registered(class) {
		t.Error("Registered")
	}
}

func TestScopeTableShadowingIsRedefinition(t *testing.T) {
	tree := ast.NewTree()
	diags := diagnostics.NewCollector()
	st := symbols.NewScopeTable(tree, diags)
	f := parse(t, tree, `class A is
	var x : 1
	method m(x : Integer) is end
end`)
	class := f.Items[0].(*ast.ClassDecl)
	st.Register(class.Members[0].(ast.Decl))
	st.Register(class.Members[1].(*ast.MethodDecl).Params[0])
	if got := diags.OfKind(diagnostics.DeclRedefinition); len(got) != 1 {
		t.Fatalf("diagnostics:\n%s", diags.Summary())
	}
}

// ---------------------------------------------------------------------------
// OverloadRegistry
// ---------------------------------------------------------------------------

func TestOverloadRegistry(t *testing.T) {
	tree := ast.NewTree()
	r := symbols.NewOverloadRegistry(tree)
	f := parse(t, tree, `class A is
	method foo(a : Integer)
	method foo(b : Integer) is end
	method foo(c : Real) is end
	method foo(d : Integer) is end
	method foo(e : Integer) is end
	this(f : Integer) is end
end`)
	class := f.Items[0].(*ast.ClassDecl)
	add := func(i int) []ast.Member { return r.Add(class.Members[i].(ast.Member)) }

	if got := add(0); got != nil {
		t.Errorf("forward declaration conflicts: %v", got)
	}
	if got := add(1); got != nil {
		t.Errorf("conflict with a forward declaration: %v", got)
	}
	if got := add(2); got != nil {
		t.Errorf("different parameter types conflict: %v", got)
	}
	got := add(3)
	if len(got) != 1 || got[0] != class.Members[1] {
		t.Fatalf("conflicts of foo(d) = %v", got)
	}
	class.Members[3].Set(ast.Broken)

	got = add(4)
	if len(got) != 2 {
		t.Fatalf("conflicts of foo(e) = %d, want both earlier matches", len(got))
	}
	if add(4) != nil {
		t.Error("adding a member twice reported conflicts")
	}
	if got := add(5); got != nil {
		t.Errorf("constructor conflicts with methods: %v", got)
	}

	if n := len(r.Group(class.ID(), "foo")); n != 5 {
		t.Errorf("group foo has %d members", n)
	}
	if n := len(r.Group(class.ID(), "this")); n != 1 {
		t.Errorf("constructor group has %d members", n)
	}
	if !r.Contains(class.Members[5]) {
		t.Error("constructor not contained")
	}
}

func TestOverloadConflictNeedsLiveMember(t *testing.T) {
	tree := ast.NewTree()
	r := symbols.NewOverloadRegistry(tree)
	f := parse(t, tree, `class A is
	this(a : Integer) is end
	this(b : Integer) is end
end`)
	class := f.Items[0].(*ast.ClassDecl)
	first := class.Members[0].(ast.Member)
	first.Set(ast.Broken)
	r.Add(first)
	if got := r.Add(class.Members[1].(ast.Member)); got != nil {
		t.Errorf("conflict with only broken members: %v", got)
	}
}

// ---------------------------------------------------------------------------
// Related windows
// ---------------------------------------------------------------------------

func TestRelatedOf(t *testing.T) {
	tree := ast.NewTree()
	f := parse(t, tree, "class A is\n\tmethod foo(a : Integer) : Real is end\nend")
	m := f.Items[0].(*ast.ClassDecl).Members[0]
	rel := symbols.RelatedOf(m)
	if rel.Window.Start.Line != 2 || rel.Window.Start.Column != 9 {
		t.Errorf("related window = %v", rel.Window.Start)
	}
	if !strings.Contains(rel.Name, "foo") {
		t.Errorf("related name = %q", rel.Name)
	}
}
