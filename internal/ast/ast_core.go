package ast

import (
	"github.com/funvibe/ofront/internal/ids"
	"github.com/funvibe/ofront/internal/scope"
	"github.com/funvibe/ofront/internal/token"
	"github.com/funvibe/ofront/internal/typesystem"
)

// Flag is an analysis flag carried by every node.
type Flag uint8

const (
	Broken         Flag = 1 << iota // an error touched this node
	AfterTypeCheck                  // the owning pass finished with this node
	BuiltIn                         // parsed from a built-in class snippet
	InTypeCheck                     // resolution of this node is in progress
	InVisitor                       // a visitor hook is running on this node
)

func (f Flag) String() string {
	switch f {
	case Broken:
		return "Broken"
	case AfterTypeCheck:
		return "AfterTypeCheck"
	case BuiltIn:
		return "BuiltIn"
	case InTypeCheck:
		return "InTypeCheck"
	case InVisitor:
		return "InVisitor"
	default:
		return "Flag(?)"
	}
}

// Node is the base interface for all AST nodes. The set of node kinds is
// closed: only types in this package implement it.
type Node interface {
	ID() ids.NodeID
	Window() token.Window
	Scope() scope.ID
	Has(f Flag) bool
	Set(f Flag)
	Clear(f Flag)
	GetToken() token.Token
	base() *Base
}

// Base carries the data shared by every node kind.
type Base struct {
	id       ids.NodeID
	Win      token.Window
	flags    Flag
	scope    scope.ID
	scopeSet bool
}

func (b *Base) base() *Base          { return b }
func (b *Base) ID() ids.NodeID       { return b.id }
func (b *Base) Window() token.Window { return b.Win }
func (b *Base) Has(f Flag) bool      { return b.flags&f != 0 }
func (b *Base) Set(f Flag)           { b.flags |= f }
func (b *Base) Clear(f Flag)         { b.flags &^= f }

// SetWindow records the source range once the parser has consumed the node.
func (b *Base) SetWindow(w token.Window) { b.Win = w }

// Scope returns the scope the node was parsed in.
func (b *Base) Scope() scope.ID {
	if !b.scopeSet {
		panic(&typesystem.WriteOnceError{What: "scope", Reason: "read before assignment"})
	}
	return b.scope
}

// SetScope assigns the parse-time scope. It may be called once.
func (b *Base) SetScope(id scope.ID) {
	if b.scopeSet {
		panic(&typesystem.WriteOnceError{What: "scope", Reason: "assigned twice"})
	}
	b.scope = id
	b.scopeSet = true
}

// TypeSlot is the write-once type carried by typed nodes.
type TypeSlot struct {
	typ typesystem.Type
	set bool
}

// SetType assigns the node's type. A second write panics.
func (s *TypeSlot) SetType(t typesystem.Type) {
	if s.set {
		panic(&typesystem.WriteOnceError{What: "type", Reason: "assigned twice"})
	}
	if t == nil {
		panic(&typesystem.WriteOnceError{What: "type", Reason: "assigned nil"})
	}
	s.typ = t
	s.set = true
}

// Type returns the node's type. Reading before the first write panics.
func (s *TypeSlot) Type() typesystem.Type {
	if !s.set {
		panic(&typesystem.WriteOnceError{What: "type", Reason: "read before assignment"})
	}
	return s.typ
}

func (s *TypeSlot) HasType() bool { return s.set }

// Typed is a node that carries a write-once type.
type Typed interface {
	Node
	SetType(t typesystem.Type)
	Type() typesystem.Type
	HasType() bool
}

// Binding is a write-once, non-owning reference to a declaration.
type Binding struct {
	target ids.NodeID
}

// Bind records the target declaration. Rebinding panics.
func (b *Binding) Bind(id ids.NodeID) {
	if b.target.IsValid() {
		panic(&typesystem.WriteOnceError{What: "binding", Reason: "assigned twice"})
	}
	if !id.IsValid() {
		panic(&typesystem.WriteOnceError{What: "binding", Reason: "assigned an empty id"})
	}
	b.target = id
}

// Target returns the bound declaration id. Reading an unbound reference panics.
func (b *Binding) Target() ids.NodeID {
	if !b.target.IsValid() {
		panic(&typesystem.WriteOnceError{What: "binding", Reason: "read before assignment"})
	}
	return b.target
}

func (b *Binding) IsBound() bool { return b.target.IsValid() }

// Bound is a node whose name resolves to a declaration.
type Bound interface {
	Typed
	Bind(id ids.NodeID)
	Target() ids.NodeID
	IsBound() bool
}

// Decl is a node that introduces a name.
type Decl interface {
	Typed
	DeclName() string
}

// Member is a declaration owned by a class body.
type Member interface {
	Decl
	Owner() ids.NodeID
	SetOwner(id ids.NodeID)
}

// owned holds the write-once back-reference from a member to its class.
type owned struct {
	owner ids.NodeID
}

func (o *owned) Owner() ids.NodeID { return o.owner }

func (o *owned) SetOwner(id ids.NodeID) {
	if o.owner.IsValid() {
		panic(&typesystem.WriteOnceError{What: "owner", Reason: "assigned twice"})
	}
	o.owner = id
}

// Statement is a node that can appear in a body.
type Statement interface {
	Node
	statementNode()
}

// Expression is a typed node that produces a value.
type Expression interface {
	Typed
	expressionNode()
}

// File is the root of one parsed source. Items are class declarations or
// top-level statements, in source order.
type File struct {
	Base
	Path    string
	Items   []Node
	BuiltIn bool
}

func (f *File) GetToken() token.Token { return token.Token{Position: f.Win.Start} }

// InvalidDecl is the shared placeholder declaration bound wherever a
// reference fails to resolve. Its type is always typesystem.Invalid.
type InvalidDecl struct {
	Base
	TypeSlot
}

func (d *InvalidDecl) DeclName() string      { return "<invalid>" }
func (d *InvalidDecl) GetToken() token.Token { return token.Token{} }
