package ast

import (
	"errors"
	"testing"

	"github.com/funvibe/ofront/internal/ids"
	"github.com/funvibe/ofront/internal/scope"
	"github.com/funvibe/ofront/internal/token"
	"github.com/funvibe/ofront/internal/typesystem"
)

// expectWriteOnce runs f and checks it panics with a WriteOnceError about what.
func expectWriteOnce(t *testing.T, what string, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected a %s invariant violation, got none", what)
		}
		err, ok := r.(error)
		var woe *typesystem.WriteOnceError
		if !ok || !errors.As(err, &woe) {
			t.Fatalf("panic value %v is not a WriteOnceError", r)
		}
		if woe.What != what {
			t.Errorf("violation on %q, want %q", woe.What, what)
		}
	}()
	f()
}

func TestNewTreeSentinel(t *testing.T) {
	tree := NewTree()
	inv := tree.Invalid()
	if inv.ID() != 1 {
		t.Errorf("sentinel id = %d, want 1", inv.ID())
	}
	if !inv.Has(Broken) {
		t.Error("sentinel is not Broken")
	}
	if inv.Type() != typesystem.Invalid {
		t.Errorf("sentinel type = %v", inv.Type())
	}
	if tree.Node(ids.NoNode) != nil {
		t.Error("id 0 addresses a node")
	}
	if tree.Len() != 1 {
		t.Errorf("Len = %d, want 1", tree.Len())
	}
}

func TestTreeDeclFallsBackToSentinel(t *testing.T) {
	tree := NewTree()
	lit := &IntegerLiteral{}
	id := tree.Add(lit)
	if tree.Decl(id) != tree.Invalid() {
		t.Error("non-declaration id did not map to the sentinel")
	}
	if tree.Decl(ids.NodeID(999)) != tree.Invalid() {
		t.Error("unknown id did not map to the sentinel")
	}
	if tree.Class(id) != nil {
		t.Error("literal returned as a class")
	}
}

func TestAddTwicePanics(t *testing.T) {
	tree := NewTree()
	v := &VarDecl{}
	tree.Add(v)
	defer func() {
		if recover() == nil {
			t.Error("second Add did not panic")
		}
	}()
	tree.Add(v)
}

// ---------------------------------------------------------------------------
// Write-once slots
// ---------------------------------------------------------------------------

func TestTypeSlot(t *testing.T) {
	v := &VarDecl{}
	if v.HasType() {
		t.Fatal("fresh node has a type")
	}
	expectWriteOnce(t, "type", func() { v.Type() })
	v.SetType(typesystem.Invalid)
	if !v.HasType() || v.Type() != typesystem.Invalid {
		t.Fatal("type not recorded")
	}
	expectWriteOnce(t, "type", func() { v.SetType(typesystem.NoValue) })
	expectWriteOnce(t, "type", func() { (&VarDecl{}).SetType(nil) })
}

func TestBinding(t *testing.T) {
	r := &Reference{}
	expectWriteOnce(t, "binding", func() { r.Target() })
	expectWriteOnce(t, "binding", func() { r.Bind(ids.NoNode) })
	r.Bind(7)
	if !r.IsBound() || r.Target() != 7 {
		t.Fatalf("target = %d", r.Target())
	}
	expectWriteOnce(t, "binding", func() { r.Bind(8) })
}

func TestScopeAndOwner(t *testing.T) {
	f := &FieldDecl{}
	expectWriteOnce(t, "scope", func() { f.Scope() })
	f.SetScope(scope.Root())
	expectWriteOnce(t, "scope", func() { f.SetScope(scope.Root()) })

	f.SetOwner(3)
	if f.Owner() != 3 {
		t.Errorf("owner = %d", f.Owner())
	}
	expectWriteOnce(t, "owner", func() { f.SetOwner(4) })
}

func TestFlags(t *testing.T) {
	n := &ThisExpr{}
	n.Set(Broken)
	n.Set(InVisitor)
	if !n.Has(Broken) || !n.Has(InVisitor) || n.Has(BuiltIn) {
		t.Fatal("flags not independent")
	}
	n.Clear(InVisitor)
	if n.Has(InVisitor) || !n.Has(Broken) {
		t.Error("Clear touched the wrong flag")
	}
}

// ---------------------------------------------------------------------------
// Class helpers
// ---------------------------------------------------------------------------

func ident(name string) token.Token {
	return token.Token{Type: token.IDENT, Lexeme: name}
}

func TestClassMemberLookup(t *testing.T) {
	f := &FieldDecl{Name: ident("x")}
	m1 := &MethodDecl{Name: ident("foo")}
	m2 := &MethodDecl{Name: ident("foo"), Params: []*Param{{Name: ident("a"), TypeRef: &TypeRef{Name: ident("Integer")}}}}
	ctor := &ConstructorDecl{}
	c := &ClassDecl{Name: ident("A"), Members: []Node{f, m1, ctor, m2}}

	if c.Field("x") != f || c.Field("y") != nil {
		t.Error("Field lookup")
	}
	if ms := c.Methods("foo"); len(ms) != 2 || ms[0] != m1 || ms[1] != m2 {
		t.Errorf("Methods(foo) = %v", ms)
	}
	if cs := c.Constructors(); len(cs) != 1 || cs[0] != ctor {
		t.Errorf("Constructors = %v", cs)
	}
	if got := ParamTypeIdentifiers(Signature(m2)); len(got) != 1 || got[0] != "Integer" {
		t.Errorf("signature = %v", got)
	}
	if Signature(f) != nil {
		t.Error("field has a signature")
	}
}

func TestParamIsTypedDecl(t *testing.T) {
	var decl Decl = &Param{Name: ident("a"), TypeRef: &TypeRef{Name: ident("Integer")}}
	if decl.HasType() {
		t.Fatal("fresh param already typed")
	}
	decl.SetType(typesystem.ParamType{Value: typesystem.Invalid})
	if _, ok := decl.Type().(typesystem.ParamType); !ok {
		t.Errorf("param type = %v", decl.Type())
	}
	if got := decl.(*Param).TypeRef.Identifier(); got != "Integer" {
		t.Errorf("annotation = %q", got)
	}
}

func TestTypeRefIdentifier(t *testing.T) {
	ref := &TypeRef{
		Name: ident("Map"),
		Args: []*TypeRef{
			{Name: ident("Integer")},
			{Name: ident("List"), Args: []*TypeRef{{Name: ident("Real")}}},
		},
	}
	if got := ref.Identifier(); got != "Map[Integer, List[Real]]" {
		t.Errorf("Identifier = %q", got)
	}
}
