package symbols

import (
	"fmt"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/config"
	"github.com/funvibe/ofront/internal/ids"
	"github.com/funvibe/ofront/internal/typesystem"
	"github.com/funvibe/ofront/internal/visitor"
)

// Frontend turns source text into a file of the given tree. The type
// manager uses it to parse the built-in classes.
type Frontend interface {
	Parse(tree *ast.Tree, path, src string) (*ast.File, error)
}

// TypeManager is the class registry of a compilation unit: built-in and
// user class declarations by name, and the resolved ClassType of every
// class whose inheritance has been resolved.
type TypeManager struct {
	tree     *ast.Tree
	builtIns map[string]*ast.ClassDecl
	user     map[string]*ast.ClassDecl // first declaration seen per name
	known    map[ids.NodeID]bool
	types    map[string]*typesystem.ClassType
	files    []*ast.File
}

// NewTypeManager parses the built-in classes into tree through frontend and
// registers them. The built-in files are added to the tree before any user
// file, so they are analysed first.
func NewTypeManager(tree *ast.Tree, frontend Frontend) (*TypeManager, error) {
	tm := &TypeManager{
		tree:     tree,
		builtIns: make(map[string]*ast.ClassDecl),
		user:     make(map[string]*ast.ClassDecl),
		known:    make(map[ids.NodeID]bool),
		types:    make(map[string]*typesystem.ClassType),
	}
	for _, name := range config.BuiltInClassNames {
		path := "<builtin " + name + ">"
		f, err := frontend.Parse(tree, path, builtInSources[name])
		if err != nil {
			return nil, fmt.Errorf("parsing built-in class %s: %w", name, err)
		}
		f.BuiltIn = true
		markBuiltIn(f)

		var decl *ast.ClassDecl
		for _, item := range f.Items {
			if c, ok := item.(*ast.ClassDecl); ok && c.DeclName() == name {
				decl = c
			}
		}
		if decl == nil {
			return nil, fmt.Errorf("built-in source for %s declares no class %s", name, name)
		}
		tm.builtIns[name] = decl
		tm.known[decl.ID()] = true
		tm.files = append(tm.files, f)
	}
	return tm, nil
}

// markBuiltIn flags n and its whole subtree BuiltIn.
func markBuiltIn(n ast.Node) {
	n.Set(ast.BuiltIn)
	for _, c := range visitor.Children(n) {
		markBuiltIn(c)
	}
}

// BuiltInFiles returns the parsed built-in class files in bootstrap order.
func (tm *TypeManager) BuiltInFiles() []*ast.File { return tm.files }

// LearnDecl registers a user class declaration. The first declaration of a
// name becomes its user definition; later ones are only remembered as
// known.
func (tm *TypeManager) LearnDecl(decl *ast.ClassDecl) {
	tm.known[decl.ID()] = true
	if decl.Has(ast.BuiltIn) {
		return
	}
	if _, ok := tm.user[decl.DeclName()]; !ok {
		tm.user[decl.DeclName()] = decl
	}
}

// LearnType registers a resolved class type. Learning a name twice is an
// invariant violation and panics.
func (tm *TypeManager) LearnType(t *typesystem.ClassType) {
	if _, ok := tm.types[t.Name]; ok {
		panic(&typesystem.WriteOnceError{What: "class type " + t.Name, Reason: "learned twice"})
	}
	tm.types[t.Name] = t
}

// Knows reports whether decl was registered as a built-in or by LearnDecl.
func (tm *TypeManager) Knows(decl *ast.ClassDecl) bool {
	return tm.known[decl.ID()]
}

func (tm *TypeManager) HasType(name string) bool {
	_, ok := tm.types[name]
	return ok
}

// Type returns the resolved type of the class named name.
func (tm *TypeManager) Type(name string) (*typesystem.ClassType, error) {
	t, ok := tm.types[name]
	if !ok {
		return nil, typesystem.NewTypeNotFoundError(name)
	}
	return t, nil
}

// BuiltInType returns the resolved type of a built-in class. Built-ins are
// resolved before any user code is analysed; asking earlier panics.
func (tm *TypeManager) BuiltInType(name string) *typesystem.ClassType {
	t, err := tm.Type(name)
	if err != nil {
		panic(fmt.Sprintf("symbols: built-in %s used before inheritance resolution: %v", name, err))
	}
	return t
}

func (tm *TypeManager) HasUserDefinition(name string) bool {
	_, ok := tm.user[name]
	return ok
}

func (tm *TypeManager) UserDefinition(name string) (*ast.ClassDecl, bool) {
	d, ok := tm.user[name]
	return d, ok
}

func (tm *TypeManager) IsBuiltIn(name string) bool {
	_, ok := tm.builtIns[name]
	return ok
}

func (tm *TypeManager) BuiltInDefinition(name string) (*ast.ClassDecl, bool) {
	d, ok := tm.builtIns[name]
	return d, ok
}

// Definition returns the declaration a class name refers to: the built-in
// if there is one, otherwise the first user declaration.
func (tm *TypeManager) Definition(name string) (*ast.ClassDecl, bool) {
	if d, ok := tm.builtIns[name]; ok {
		return d, true
	}
	return tm.UserDefinition(name)
}

// Len returns the number of class names with a definition.
func (tm *TypeManager) Len() int {
	return len(tm.builtIns) + len(tm.user)
}
