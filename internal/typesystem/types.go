package typesystem

import (
	"strings"

	"github.com/funvibe/ofront/internal/ids"
)

// Type is the interface for all resolved types. Types are immutable values
// created only after resolution.
type Type interface {
	String() string
	typeNode()
}

// ClassType is a resolved class: its declaration plus its super type.
// Only the universal root has no super type.
type ClassType struct {
	Decl    ids.NodeID
	Name    string
	Super   *ClassType
	BuiltIn bool
}

func (c *ClassType) typeNode() {}

func (c *ClassType) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Name
}

// IsRoot reports whether c is the universal root type.
func (c *ClassType) IsRoot() bool {
	return c != nil && c != Invalid && c.Super == nil
}

// Chain returns c followed by its super types up to the root. The Invalid
// sentinel terminates a chain that failed to resolve.
func (c *ClassType) Chain() []*ClassType {
	var out []*ClassType
	for t := c; t != nil; t = t.Super {
		out = append(out, t)
		if t == Invalid {
			break
		}
	}
	return out
}

// Invalid is the placeholder class type bound wherever resolution failed.
var Invalid = &ClassType{Name: "<invalid>"}

// IsInvalid reports whether t is, or wraps, the Invalid sentinel.
func IsInvalid(t Type) bool {
	if t == nil {
		return true
	}
	if v := ValueOf(t); v != nil {
		return v == Invalid
	}
	return false
}

type noValue struct{}

func (noValue) typeNode()      {}
func (noValue) String() string { return "<no value>" }

// NoValue is the distinguished return type of methods that produce nothing.
var NoValue Type = noValue{}

// FieldType is the type of a field declaration.
type FieldType struct {
	Owner *ClassType
	Value *ClassType
}

func (FieldType) typeNode()        {}
func (t FieldType) String() string { return t.Value.String() }

// ConstructorType is the signature of a constructor.
type ConstructorType struct {
	Owner  *ClassType
	Params []*ClassType
}

func (ConstructorType) typeNode() {}
func (t ConstructorType) String() string {
	return "this(" + joinTypes(t.Params) + ")"
}

// MethodType is the signature of a method.
type MethodType struct {
	Owner  *ClassType
	Name   string
	Params []*ClassType
	Return Type // *ClassType or NoValue
}

func (MethodType) typeNode() {}
func (t MethodType) String() string {
	s := t.Name + "(" + joinTypes(t.Params) + ")"
	if t.Return != NoValue && t.Return != nil {
		s += " : " + t.Return.String()
	}
	return s
}

// VarType is the type of a local or top-level variable.
type VarType struct {
	Value *ClassType
}

func (VarType) typeNode()        {}
func (t VarType) String() string { return t.Value.String() }

// ParamType is the type of a parameter.
type ParamType struct {
	Value *ClassType
}

func (ParamType) typeNode()        {}
func (t ParamType) String() string { return t.Value.String() }

// ValueOf returns the class type a value of t carries, or nil when t is not
// a value type (methods, constructors, NoValue).
func ValueOf(t Type) *ClassType {
	switch tt := t.(type) {
	case *ClassType:
		return tt
	case FieldType:
		return tt.Value
	case VarType:
		return tt.Value
	case ParamType:
		return tt.Value
	default:
		return nil
	}
}

// SameIdentifier compares two class types by identifier only. There is no
// subtype reasoning.
func SameIdentifier(a, b *ClassType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name
}

func joinTypes(ts []*ClassType) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
