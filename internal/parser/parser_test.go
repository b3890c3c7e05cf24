package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/lexer"
	"github.com/funvibe/ofront/internal/parser"
)

// parseInto lexes and parses input as a new file of tree.
func parseInto(tree *ast.Tree, path, input string) (*ast.File, []error) {
	return parser.Parse(tree, path, lexer.Tokenize(path, input))
}

// parseClean parses input and fails on any syntax error.
func parseClean(t *testing.T, input string) *ast.File {
	t.Helper()
	f, errs := parseInto(ast.NewTree(), "test.ol", input)
	if len(errs) > 0 {
		t.Fatalf("unexpected syntax errors:\n%v\ninput: %s", errors.Join(errs...), input)
	}
	return f
}

// expectSyntaxError asserts input yields a syntax error whose summary
// contains want.
func expectSyntaxError(t *testing.T, input, want string) {
	t.Helper()
	_, errs := parseInto(ast.NewTree(), "test.ol", input)
	if len(errs) == 0 {
		t.Fatalf("expected a syntax error, got none\ninput: %s", input)
	}
	var msgs []string
	for _, err := range errs {
		var d *diagnostics.Diagnostic
		if !errors.As(err, &d) {
			t.Fatalf("error %v is not a diagnostic", err)
		}
		if d.Kind != diagnostics.SyntaxError {
			t.Fatalf("error kind = %s, want SyntaxError", d.Kind)
		}
		if strings.Contains(d.Summary, want) {
			return
		}
		msgs = append(msgs, d.Summary)
	}
	t.Fatalf("expected an error containing %q, got:\n%s\ninput: %s", want, strings.Join(msgs, "\n"), input)
}

const sample = `class A[T] extends B is
	var x : 1
	method get(a : Integer) : Integer is
		return a
	end
	this() is end
end`

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

func TestParseClassShape(t *testing.T) {
	f := parseClean(t, sample)
	if len(f.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(f.Items))
	}
	class, ok := f.Items[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("item is %T", f.Items[0])
	}
	if class.DeclName() != "A" || len(class.TypeParams) != 1 || class.TypeParams[0].Name.Lexeme != "T" {
		t.Errorf("header = %s %v", class.DeclName(), class.TypeParams)
	}
	if class.Super == nil || class.Super.Identifier() != "B" {
		t.Errorf("super = %v", class.Super)
	}
	if len(class.Members) != 3 {
		t.Fatalf("members = %d, want 3", len(class.Members))
	}
	for _, m := range class.Members {
		if owner := m.(ast.Member).Owner(); owner != class.ID() {
			t.Errorf("%s owned by %d, want %d", m.(ast.Decl).DeclName(), owner, class.ID())
		}
	}

	method := class.Members[1].(*ast.MethodDecl)
	if method.Forward || len(method.Body) != 1 || method.Result.Identifier() != "Integer" {
		t.Errorf("method = forward:%v body:%d", method.Forward, len(method.Body))
	}
	if got := ast.ParamTypeIdentifiers(method.Params); len(got) != 1 || got[0] != "Integer" {
		t.Errorf("params = %v", got)
	}
	ctor := class.Members[2].(*ast.ConstructorDecl)
	if ctor.Forward || len(ctor.Params) != 0 {
		t.Errorf("constructor = forward:%v params:%d", ctor.Forward, len(ctor.Params))
	}
}

func TestForwardDeclarations(t *testing.T) {
	f := parseClean(t, `class A is
	method foo(a : Integer) : Integer
	this(b : Real)
	method bar is end
end`)
	class := f.Items[0].(*ast.ClassDecl)
	foo := class.Members[0].(*ast.MethodDecl)
	ctor := class.Members[1].(*ast.ConstructorDecl)
	bar := class.Members[2].(*ast.MethodDecl)
	if !foo.Forward || foo.Body != nil {
		t.Error("foo is not a forward declaration")
	}
	if !ctor.Forward {
		t.Error("constructor is not a forward declaration")
	}
	if bar.Forward || bar.Params != nil || bar.Result != nil {
		t.Error("bar has unexpected parts")
	}
}

func TestScopes(t *testing.T) {
	f := parseClean(t, sample)
	class := f.Items[0].(*ast.ClassDecl)
	field := class.Members[0].(*ast.FieldDecl)
	method := class.Members[1].(*ast.MethodDecl)
	ctor := class.Members[2].(*ast.ConstructorDecl)
	ret := method.Body[0].(*ast.ReturnStatement)

	got := map[string]string{
		"class":       class.Scope().String(),
		"type param":  class.TypeParams[0].Scope().String(),
		"super":       class.Super.Scope().String(),
		"field":       field.Scope().String(),
		"initializer": field.Value.Scope().String(),
		"method":      method.Scope().String(),
		"param":       method.Params[0].Scope().String(),
		"return":      ret.Scope().String(),
		"constructor": ctor.Scope().String(),
	}
	want := map[string]string{
		"class":       "<root>",
		"type param":  "class#0",
		"super":       "class#0",
		"field":       "class#0/class-body#0",
		"initializer": "class#0/class-body#0/var-initializer#0",
		"method":      "class#0/class-body#0",
		"param":       "class#0/class-body#0/method#1",
		"return":      "class#0/class-body#0/method#1/body#0",
		"constructor": "class#0/class-body#0",
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
	if !field.Scope().IsPrefixOf(ret.Scope()) {
		t.Error("class body does not enclose the method body")
	}
}

func TestStatementScopes(t *testing.T) {
	f := parseClean(t, `var x : (1)
while true loop
	if x then var y : 2 else var z : 3 end
end`)
	v := f.Items[0].(*ast.VarDecl)
	loop := f.Items[1].(*ast.WhileLoop)
	cond := loop.Body[0].(*ast.IfStatement)

	got := []string{
		v.Value.Scope().String(),
		cond.Scope().String(),
		cond.Then[0].Scope().String(),
		cond.Else[0].Scope().String(),
	}
	want := []string{
		"var-initializer#0/expression#0",
		"while-body#1",
		"while-body#1/body#0",
		"while-body#1/body#1",
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestSecondFileContinuesNumbering(t *testing.T) {
	tree := ast.NewTree()
	if _, errs := parseInto(tree, "a.ol", "class A is end"); len(errs) > 0 {
		t.Fatal(errs)
	}
	f, errs := parseInto(tree, "b.ol", "class B is var x : 1 end")
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	field := f.Items[0].(*ast.ClassDecl).Members[0]
	if got := field.Scope().String(); got != "class#1/class-body#0" {
		t.Errorf("field scope = %s", got)
	}
	if len(tree.Files()) != 2 {
		t.Errorf("tree has %d files", len(tree.Files()))
	}
}

// ---------------------------------------------------------------------------
// Expressions and windows
// ---------------------------------------------------------------------------

func TestMemberChainAndCalls(t *testing.T) {
	f := parseClean(t, "a.b(1, true).c")
	outer := f.Items[0].(*ast.ExprStatement).Expr.(*ast.MemberAccess)
	if outer.Member.Lexeme != "c" || outer.IsCall {
		t.Fatalf("outer = %s call:%v", outer.Member.Lexeme, outer.IsCall)
	}
	inner := outer.Object.(*ast.MemberAccess)
	if inner.Member.Lexeme != "b" || !inner.IsCall || len(inner.Args) != 2 {
		t.Fatalf("inner = %s call:%v args:%d", inner.Member.Lexeme, inner.IsCall, len(inner.Args))
	}
	if ref := inner.Object.(*ast.Reference); ref.Name.Lexeme != "a" || ref.IsCall {
		t.Errorf("root = %s", ref.Name.Lexeme)
	}
	w := outer.Window()
	if w.Start.Column != 1 || w.End.Column != 15 {
		t.Errorf("window = %d..%d, want 1..15", w.Start.Column, w.End.Column)
	}
}

func TestCallMustStartOnSameLine(t *testing.T) {
	f := parseClean(t, "foo\n(1)")
	if len(f.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(f.Items))
	}
	if ref := f.Items[0].(*ast.ExprStatement).Expr.(*ast.Reference); ref.IsCall {
		t.Error("call across a line break")
	}
}

func TestReturnValueOnSameLine(t *testing.T) {
	f := parseClean(t, `class A is
	method m is
		return
		x
	end
end`)
	body := f.Items[0].(*ast.ClassDecl).Members[0].(*ast.MethodDecl).Body
	if len(body) != 2 {
		t.Fatalf("body = %d statements, want 2", len(body))
	}
	if body[0].(*ast.ReturnStatement).Value != nil {
		t.Error("return took the value from the next line")
	}
}

func TestConstructorCallWithTypeArgs(t *testing.T) {
	f := parseClean(t, "var l : List[Integer]()")
	ref := f.Items[0].(*ast.VarDecl).Value.(*ast.Reference)
	if !ref.IsCall || len(ref.TypeArgs) != 1 || ref.TypeArgs[0].Identifier() != "Integer" {
		t.Errorf("reference = call:%v typeargs:%d", ref.IsCall, len(ref.TypeArgs))
	}
}

func TestAssignment(t *testing.T) {
	f := parseClean(t, "this.x := 2.5")
	a := f.Items[0].(*ast.Assignment)
	if _, ok := a.Target.(*ast.MemberAccess); !ok {
		t.Errorf("target is %T", a.Target)
	}
	if lit, ok := a.Value.(*ast.RealLiteral); !ok || lit.Value != 2.5 {
		t.Errorf("value = %v", a.Value)
	}
}

func TestEveryNodeInArena(t *testing.T) {
	tree := ast.NewTree()
	f, errs := parseInto(tree, "test.ol", sample)
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	class := f.Items[0].(*ast.ClassDecl)
	for _, n := range []ast.Node{f, class, class.Super, class.Members[0], class.Members[1]} {
		if tree.Node(n.ID()) != n {
			t.Errorf("%T not addressable by its id %d", n, n.ID())
		}
	}
}

// ---------------------------------------------------------------------------
// Syntax errors
// ---------------------------------------------------------------------------

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"class without name", "class is end", "expected identifier, found 'is'"},
		{"var without colon", "var x 1", "expected ':', found \"1\""},
		{"stray member", "class A is foo end", "expected a field, method or constructor"},
		{"nested class", "class A is method m is class B is end end end", "only allowed at the top level"},
		{"illegal character", "var x : #", "illegal token \"#\""},
		{"missing end", "class A is method m is return 1", "end of file"},
		{"member name", "a.1", "expected member name after '.'"},
		{"stray keyword", "loop", "unexpected 'loop'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectSyntaxError(t, tt.input, tt.want)
		})
	}
}

func TestBrokenDeclarationsAreFlagged(t *testing.T) {
	f, _ := parseInto(ast.NewTree(), "test.ol", "var x\nclass is end")
	if !f.Items[0].Has(ast.Broken) {
		t.Error("var without initializer not Broken")
	}
	if !f.Items[len(f.Items)-1].Has(ast.Broken) {
		t.Error("nameless class not Broken")
	}
}
