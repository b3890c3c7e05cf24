// Package ids holds the stable integer identifiers used to address nodes
// in a compilation unit's arena. Back-references between nodes are ids,
// never pointers.
package ids

// NodeID identifies a node within one ast.Tree.
type NodeID uint32

// NoNode is the zero id; it never addresses a node.
const NoNode NodeID = 0

// IsValid reports whether the id addresses a node.
func (id NodeID) IsValid() bool { return id != NoNode }
