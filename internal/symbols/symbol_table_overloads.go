package symbols

import (
	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/ids"
)

type groupKey struct {
	owner ids.NodeID
	name  string // "this" for constructors
}

// OverloadRegistry groups the methods of a class by name, and its
// constructors together, in the order they were added.
type OverloadRegistry struct {
	tree   *ast.Tree
	groups map[groupKey][]ids.NodeID
	added  map[ids.NodeID]bool
}

func NewOverloadRegistry(tree *ast.Tree) *OverloadRegistry {
	return &OverloadRegistry{
		tree:   tree,
		groups: make(map[groupKey][]ids.NodeID),
		added:  make(map[ids.NodeID]bool),
	}
}

// Add appends a method or constructor to its group and returns the earlier
// members it conflicts with: those of equal arity whose declared parameter
// type identifiers match positionally. A conflict exists only if at least
// one of them is not Broken; otherwise the result is empty. Forward
// declarations never conflict and are never conflicted with. Adding a
// member twice is a no-op.
func (r *OverloadRegistry) Add(decl ast.Member) []ast.Member {
	if r.added[decl.ID()] {
		return nil
	}
	r.added[decl.ID()] = true

	key := groupKey{owner: decl.Owner(), name: decl.DeclName()}
	earlier := r.groups[key]
	r.groups[key] = append(earlier, decl.ID())

	if isForward(decl) {
		return nil
	}

	sig := ast.ParamTypeIdentifiers(ast.Signature(decl))
	var matches []ast.Member
	live := false
	for _, id := range earlier {
		other, ok := r.tree.Node(id).(ast.Member)
		if !ok || isForward(other) {
			continue
		}
		if !sameSignature(sig, ast.ParamTypeIdentifiers(ast.Signature(other))) {
			continue
		}
		matches = append(matches, other)
		if !other.Has(ast.Broken) {
			live = true
		}
	}
	if !live {
		return nil
	}
	return matches
}

// Group returns the members added for (owner, name) in insertion order.
func (r *OverloadRegistry) Group(owner ids.NodeID, name string) []ast.Member {
	found := r.groups[groupKey{owner: owner, name: name}]
	out := make([]ast.Member, 0, len(found))
	for _, id := range found {
		if m, ok := r.tree.Node(id).(ast.Member); ok {
			out = append(out, m)
		}
	}
	return out
}

// Contains reports whether decl was added.
func (r *OverloadRegistry) Contains(decl ast.Node) bool {
	return r.added[decl.ID()]
}

func isForward(decl ast.Node) bool {
	switch d := decl.(type) {
	case *ast.MethodDecl:
		return d.Forward
	case *ast.ConstructorDecl:
		return d.Forward
	}
	return false
}

func sameSignature(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
