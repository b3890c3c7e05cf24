// symbols/symbol_table.go - Main symbol table entry point
//
// The registries shared by the analysis passes of one compilation unit:
// - symbol_table_scopes.go: declaration scope table (names by scope path)
// - symbol_table_overloads.go: overload groups of methods and constructors
// - type_manager.go: class registry and built-in class bootstrap
// - builtins.go: source text of the built-in classes
//
// None of them is safe for concurrent use. A unit owns one instance of
// each; the built-in bootstrap never shares instances across units.

package symbols

import (
	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/prettyprinter"
	"github.com/funvibe/ofront/internal/token"
)

// RelatedOf describes decl for a diagnostic that points back at it.
func RelatedOf(decl ast.Node) diagnostics.Related {
	return diagnostics.Related{
		Name:   prettyprinter.Header(decl),
		Window: NameWindow(decl),
	}
}

// NameWindow is the window of the token that names decl.
func NameWindow(decl ast.Node) token.Window {
	tok := decl.GetToken()
	if !tok.Position.IsValid() {
		return decl.Window()
	}
	return token.WindowOf(tok)
}
