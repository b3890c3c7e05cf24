package symbols

import (
	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/ids"
	"github.com/funvibe/ofront/internal/prettyprinter"
	"github.com/funvibe/ofront/internal/scope"
)

// ScopeTable maps scope paths to the declarations registered there.
// Methods live in a separate sub-table: repeated method names are legal and
// left to overload resolution.
type ScopeTable struct {
	tree    *ast.Tree
	sink    diagnostics.Sink
	decls   map[string]map[string][]ids.NodeID // scope key -> name -> ids
	methods map[string]map[string][]ids.NodeID
	seen    map[ids.NodeID]bool
}

func NewScopeTable(tree *ast.Tree, sink diagnostics.Sink) *ScopeTable {
	return &ScopeTable{
		tree:    tree,
		sink:    sink,
		decls:   make(map[string]map[string][]ids.NodeID),
		methods: make(map[string]map[string][]ids.NodeID),
		seen:    make(map[ids.NodeID]bool),
	}
}

// Register inserts decl under its own scope. A user declaration whose name
// is already visible at that scope is reported as DeclRedefinition and
// marked Broken; it is registered regardless. Registering the same node
// again is a no-op and reports false.
func (s *ScopeTable) Register(decl ast.Decl) bool {
	if s.seen[decl.ID()] {
		return false
	}
	s.seen[decl.ID()] = true

	name := decl.DeclName()
	sc := decl.Scope()

	if _, isMethod := decl.(*ast.MethodDecl); isMethod {
		insert(s.methods, sc, name, decl.ID())
		return true
	}

	if !decl.Has(ast.BuiltIn) {
		if earlier, ok := s.Resolve(name, sc); ok && earlier.ID() != decl.ID() {
			s.sink.Diag(
				diagnostics.NewDeclRedefinition(name, RelatedOf(earlier), prettyprinter.Format(earlier)),
				NameWindow(decl),
			)
			decl.Set(ast.Broken)
		}
	}
	insert(s.decls, sc, name, decl.ID())
	return true
}

func insert(table map[string]map[string][]ids.NodeID, sc scope.ID, name string, id ids.NodeID) {
	key := sc.Key()
	byName, ok := table[key]
	if !ok {
		byName = make(map[string][]ids.NodeID)
		table[key] = byName
	}
	byName[name] = append(byName[name], id)
}

// Registered reports whether decl has been registered.
func (s *ScopeTable) Registered(decl ast.Node) bool {
	return s.seen[decl.ID()]
}

// Resolve returns the innermost declaration of name visible at sc. Within
// one scope the first registered declaration wins.
func (s *ScopeTable) Resolve(name string, sc scope.ID) (ast.Decl, bool) {
	return s.ResolveWhere(name, sc, nil)
}

// ResolveWhere is Resolve restricted to declarations accepted by keep. A nil
// keep accepts everything.
func (s *ScopeTable) ResolveWhere(name string, sc scope.ID, keep func(ast.Decl) bool) (ast.Decl, bool) {
	for _, prefix := range sc.Prefixes() {
		for _, id := range s.decls[prefix.Key()][name] {
			decl := s.tree.Decl(id)
			if keep == nil || keep(decl) {
				return decl, true
			}
		}
	}
	return nil, false
}

// ResolveMethods returns every method named name registered at the
// innermost scope on sc's path that has any, in declaration order.
func (s *ScopeTable) ResolveMethods(name string, sc scope.ID) []*ast.MethodDecl {
	for _, prefix := range sc.Prefixes() {
		found := s.methods[prefix.Key()][name]
		if len(found) == 0 {
			continue
		}
		out := make([]*ast.MethodDecl, 0, len(found))
		for _, id := range found {
			if m, ok := s.tree.Node(id).(*ast.MethodDecl); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// Visible reports whether name resolves at sc to any declaration or method.
func (s *ScopeTable) Visible(name string, sc scope.ID) bool {
	if _, ok := s.Resolve(name, sc); ok {
		return true
	}
	return len(s.ResolveMethods(name, sc)) > 0
}
