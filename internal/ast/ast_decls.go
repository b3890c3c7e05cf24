package ast

import (
	"github.com/funvibe/ofront/internal/token"
)

// ClassDecl represents a class declaration.
// class Name [T, U] extends Super is ... end
type ClassDecl struct {
	Base
	TypeSlot
	Token      token.Token // The 'class' token
	Name       token.Token
	TypeParams []*TypeParam
	Super      *TypeRef // nil when there is no 'extends' clause
	Members    []Node   // *FieldDecl, *MethodDecl, *ConstructorDecl
}

func (c *ClassDecl) statementNode()        {}
func (c *ClassDecl) DeclName() string      { return c.Name.Lexeme }
func (c *ClassDecl) GetToken() token.Token { return c.Name }

// Methods returns the class's methods named name, in declaration order.
func (c *ClassDecl) Methods(name string) []*MethodDecl {
	var out []*MethodDecl
	for _, m := range c.Members {
		if md, ok := m.(*MethodDecl); ok && md.DeclName() == name {
			out = append(out, md)
		}
	}
	return out
}

// Field returns the first field named name, or nil.
func (c *ClassDecl) Field(name string) *FieldDecl {
	for _, m := range c.Members {
		if fd, ok := m.(*FieldDecl); ok && fd.DeclName() == name {
			return fd
		}
	}
	return nil
}

// Constructors returns the class's constructors in declaration order.
func (c *ClassDecl) Constructors() []*ConstructorDecl {
	var out []*ConstructorDecl
	for _, m := range c.Members {
		if cd, ok := m.(*ConstructorDecl); ok {
			out = append(out, cd)
		}
	}
	return out
}

// TypeParam represents a generic parameter of a class declaration.
type TypeParam struct {
	Base
	Name token.Token
}

func (tp *TypeParam) GetToken() token.Token { return tp.Name }

// TypeRef represents a reference to a class by name, e.g. Integer or
// List[Integer].
type TypeRef struct {
	Base
	TypeSlot
	Name token.Token
	Args []*TypeRef
}

func (tr *TypeRef) GetToken() token.Token { return tr.Name }

// Identifier returns the textual identifier of the referenced type,
// including type arguments. Overload matching compares these.
func (tr *TypeRef) Identifier() string {
	if len(tr.Args) == 0 {
		return tr.Name.Lexeme
	}
	s := tr.Name.Lexeme + "["
	for i, a := range tr.Args {
		if i > 0 {
			s += ", "
		}
		s += a.Identifier()
	}
	return s + "]"
}

// FieldDecl represents a variable declared in a class body.
// var name : initializer
type FieldDecl struct {
	Base
	TypeSlot
	owned
	Token token.Token // The 'var' token
	Name  token.Token
	Value Expression
}

func (f *FieldDecl) DeclName() string      { return f.Name.Lexeme }
func (f *FieldDecl) GetToken() token.Token { return f.Name }

// Param represents a method or constructor parameter.
type Param struct {
	Base
	TypeSlot
	Name    token.Token
	TypeRef *TypeRef
}

func (p *Param) DeclName() string      { return p.Name.Lexeme }
func (p *Param) GetToken() token.Token { return p.Name }

// MethodDecl represents a method. A method without a body is a forward
// declaration.
// method name(params) : Result is ... end
type MethodDecl struct {
	Base
	TypeSlot
	owned
	Token   token.Token // The 'method' token
	Name    token.Token
	Params  []*Param
	Result  *TypeRef // nil when the method returns no value
	Body    []Statement
	Forward bool
}

func (m *MethodDecl) DeclName() string      { return m.Name.Lexeme }
func (m *MethodDecl) GetToken() token.Token { return m.Name }

// ConstructorDecl represents a constructor.
// this(params) is ... end
type ConstructorDecl struct {
	Base
	TypeSlot
	owned
	Token   token.Token // The 'this' token
	Params  []*Param
	Body    []Statement
	Forward bool
}

func (c *ConstructorDecl) DeclName() string      { return "this" }
func (c *ConstructorDecl) GetToken() token.Token { return c.Token }

// VarDecl represents a local or top-level variable.
// var name : initializer
type VarDecl struct {
	Base
	TypeSlot
	Token token.Token // The 'var' token
	Name  token.Token
	Value Expression
}

func (v *VarDecl) statementNode()        {}
func (v *VarDecl) DeclName() string      { return v.Name.Lexeme }
func (v *VarDecl) GetToken() token.Token { return v.Name }

// ParamTypeIdentifiers returns the declared parameter type identifiers in
// positional order.
func ParamTypeIdentifiers(params []*Param) []string {
	out := make([]string, len(params))
	for i, p := range params {
		if p.TypeRef != nil {
			out[i] = p.TypeRef.Identifier()
		}
	}
	return out
}

// Signature returns the parameter list of a method or constructor.
func Signature(n Node) []*Param {
	switch d := n.(type) {
	case *MethodDecl:
		return d.Params
	case *ConstructorDecl:
		return d.Params
	default:
		return nil
	}
}
