// Package scope implements structural scope identifiers.
//
// A scope identifier is the path of nested syntactic blocks from the program
// root to a parse location. Each step records its depth, its index among the
// sibling blocks of its parent and the kind of block it opens. Because the
// path is structural, "is S an ancestor of T" is a prefix test and needs no
// live parent links.
package scope

import (
	"strconv"
	"strings"
)

// Kind is the kind of syntactic block a segment opens.
type Kind uint8

const (
	Default Kind = iota
	Class
	ClassBody
	Method
	Body
	WhileBody
	Expression
	VarInitializer
)

func (k Kind) String() string {
	switch k {
	case Class:
		return "class"
	case ClassBody:
		return "class-body"
	case Method:
		return "method"
	case Body:
		return "body"
	case WhileBody:
		return "while-body"
	case Expression:
		return "expression"
	case VarInitializer:
		return "var-initializer"
	default:
		return "default"
	}
}

// Segment is one (depth, sibling-index) step of a scope path.
type Segment struct {
	Depth int
	Index int
	Kind  Kind
}

// ID is an immutable scope path. The zero value is the program root.
type ID struct {
	path []Segment
}

// Root returns the program root scope.
func Root() ID { return ID{} }

// Depth returns the number of segments in the path.
func (id ID) Depth() int { return len(id.path) }

// Segments returns a copy of the path.
func (id ID) Segments() []Segment {
	out := make([]Segment, len(id.path))
	copy(out, id.path)
	return out
}

// Last returns the innermost segment; ok is false for the root.
func (id ID) Last() (Segment, bool) {
	if len(id.path) == 0 {
		return Segment{}, false
	}
	return id.path[len(id.path)-1], true
}

// Child returns the scope nested in id with the given index and kind.
func (id ID) Child(index int, kind Kind) ID {
	path := make([]Segment, len(id.path), len(id.path)+1)
	copy(path, id.path)
	path = append(path, Segment{Depth: len(id.path), Index: index, Kind: kind})
	return ID{path: path}
}

// Parent returns the enclosing scope; the root is its own parent.
func (id ID) Parent() ID {
	if len(id.path) == 0 {
		return id
	}
	return ID{path: id.path[:len(id.path)-1]}
}

// Prefixes enumerates the enclosing scopes of id, innermost first. The
// result starts with id itself and ends with the root.
func (id ID) Prefixes() []ID {
	out := make([]ID, 0, len(id.path)+1)
	for n := len(id.path); n >= 0; n-- {
		out = append(out, ID{path: id.path[:n]})
	}
	return out
}

// IsPrefixOf reports whether id encloses (or equals) other.
func (id ID) IsPrefixOf(other ID) bool {
	if len(id.path) > len(other.path) {
		return false
	}
	for i, seg := range id.path {
		if other.path[i] != seg {
			return false
		}
	}
	return true
}

// Equal reports whether both paths are identical.
func (id ID) Equal(other ID) bool {
	return len(id.path) == len(other.path) && id.IsPrefixOf(other)
}

// Key returns a comparable representation usable as a map key.
func (id ID) Key() string {
	var sb strings.Builder
	for i, seg := range id.path {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(strconv.Itoa(seg.Index))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(int(seg.Kind)))
	}
	return sb.String()
}

func (id ID) String() string {
	if len(id.path) == 0 {
		return "<root>"
	}
	parts := make([]string, len(id.path))
	for i, seg := range id.path {
		parts[i] = seg.Kind.String() + "#" + strconv.Itoa(seg.Index)
	}
	return strings.Join(parts, "/")
}
