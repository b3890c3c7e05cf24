package ast

import (
	"fmt"

	"github.com/funvibe/ofront/internal/ids"
	"github.com/funvibe/ofront/internal/scope"
	"github.com/funvibe/ofront/internal/typesystem"
)

// Tree is the node arena of one compilation unit. Every node added to it
// gets a stable id; back-references between nodes are those ids. Nodes are
// mutated in place and never removed.
type Tree struct {
	nodes   []Node
	files   []*File
	scopes  *scope.Builder
	invalid *InvalidDecl
}

func NewTree() *Tree {
	t := &Tree{
		nodes:  []Node{nil}, // id 0 is ids.NoNode
		scopes: scope.NewBuilder(),
	}
	inv := &InvalidDecl{}
	inv.SetScope(scope.Root())
	inv.SetType(typesystem.Invalid)
	inv.Set(Broken)
	t.Add(inv)
	t.invalid = inv
	return t
}

// Add registers n in the arena and returns its id. Adding a node twice
// panics.
func (t *Tree) Add(n Node) ids.NodeID {
	b := n.base()
	if b.id.IsValid() {
		panic(fmt.Sprintf("ast: node %d added twice", b.id))
	}
	b.id = ids.NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return b.id
}

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id ids.NodeID) Node {
	if int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Decl returns the declaration with the given id, or the invalid sentinel.
func (t *Tree) Decl(id ids.NodeID) Decl {
	if d, ok := t.Node(id).(Decl); ok {
		return d
	}
	return t.invalid
}

// Class returns the class declaration with the given id, or nil.
func (t *Tree) Class(id ids.NodeID) *ClassDecl {
	c, _ := t.Node(id).(*ClassDecl)
	return c
}

// Len returns the number of nodes in the arena, including the sentinel.
func (t *Tree) Len() int { return len(t.nodes) - 1 }

// AddFile appends a parsed file to the unit.
func (t *Tree) AddFile(f *File) { t.files = append(t.files, f) }

// Files returns the unit's files in the order they were parsed.
func (t *Tree) Files() []*File { return t.files }

// Scopes returns the scope builder shared by every file of the unit.
func (t *Tree) Scopes() *scope.Builder { return t.scopes }

// Invalid returns the shared invalid-declaration sentinel.
func (t *Tree) Invalid() *InvalidDecl { return t.invalid }
