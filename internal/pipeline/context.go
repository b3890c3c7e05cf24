package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/config"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/symbols"
)

// Source is one input file of a compilation unit.
type Source struct {
	Path string
	Code string
}

// PipelineContext is the state of one compilation unit. It owns the tree
// and the three registries every analysis pass shares. It is not safe for
// concurrent use.
type PipelineContext struct {
	UnitID  uuid.UUID
	Options *config.Options
	Sources []Source

	Tree  *ast.Tree
	Files []*ast.File // user files in parse order; built-in files live in TypeManager

	TypeManager *symbols.TypeManager
	Scopes      *symbols.ScopeTable
	Overloads   *symbols.OverloadRegistry
	Diagnostics *diagnostics.Collector
}

// NewContext builds a fresh unit: an empty tree, the registries and the
// parsed built-in classes.
func NewContext(opts *config.Options, frontend symbols.Frontend, sources ...Source) (*PipelineContext, error) {
	if opts == nil {
		opts = config.Default()
	}
	tree := ast.NewTree()
	tm, err := symbols.NewTypeManager(tree, frontend)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping built-in classes: %w", err)
	}
	diags := diagnostics.NewCollector()
	ctx := &PipelineContext{
		UnitID:      uuid.New(),
		Options:     opts,
		Sources:     sources,
		Tree:        tree,
		TypeManager: tm,
		Scopes:      symbols.NewScopeTable(tree, diags),
		Overloads:   symbols.NewOverloadRegistry(tree),
		Diagnostics: diags,
	}
	log.Debugf("unit %s: %d built-in classes, %d sources", ctx.UnitID, len(tm.BuiltInFiles()), len(sources))
	return ctx, nil
}

// AllFiles returns the built-in files followed by the user files.
func (ctx *PipelineContext) AllFiles() []*ast.File {
	files := make([]*ast.File, 0, len(ctx.TypeManager.BuiltInFiles())+len(ctx.Files))
	files = append(files, ctx.TypeManager.BuiltInFiles()...)
	return append(files, ctx.Files...)
}

// ShouldStop reports whether the session must end at the next boundary:
// stop-on-first-error is set and an error has been reported.
func (ctx *PipelineContext) ShouldStop() bool {
	return ctx.Options.StopOnFirstError && ctx.Diagnostics.HasErrors()
}
