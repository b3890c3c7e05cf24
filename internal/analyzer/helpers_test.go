package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/config"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/parser"
	"github.com/funvibe/ofront/internal/pipeline"
)

// analyzeSources parses every input as its own file and runs all passes.
func analyzeSources(t *testing.T, opts *config.Options, inputs ...string) *pipeline.PipelineContext {
	t.Helper()
	var sources []pipeline.Source
	for i, in := range inputs {
		sources = append(sources, pipeline.Source{Path: fmt.Sprintf("test%d.ol", i+1), Code: in})
	}
	ctx, err := pipeline.NewContext(opts, parser.Frontend{}, sources...)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	ctx = pipeline.New(&parser.ParserProcessor{}, &SemanticAnalyzerProcessor{}).Run(ctx)
	if syntax := ctx.Diagnostics.OfKind(diagnostics.SyntaxError); len(syntax) > 0 {
		t.Fatalf("unexpected syntax errors:\n%s", summarize(syntax))
	}
	return ctx
}

func analyzeSource(t *testing.T, inputs ...string) *pipeline.PipelineContext {
	t.Helper()
	return analyzeSources(t, nil, inputs...)
}

func summarize(diags []*diagnostics.Diagnostic) string {
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = d.Error()
		if d.Extra != "" {
			lines[i] += "\n    " + strings.ReplaceAll(d.Extra, "\n", "\n    ")
		}
	}
	return strings.Join(lines, "\n")
}

// expectOnly asserts the unit reported exactly one diagnostic, of kind k.
func expectOnly(t *testing.T, ctx *pipeline.PipelineContext, k diagnostics.Kind) *diagnostics.Diagnostic {
	t.Helper()
	all := ctx.Diagnostics.All()
	if len(all) != 1 || all[0].Kind != k {
		t.Fatalf("expected exactly one %s, got %d:\n%s", k, len(all), summarize(all))
	}
	return all[0]
}

func expectNoDiagnostics(t *testing.T, ctx *pipeline.PipelineContext) {
	t.Helper()
	if all := ctx.Diagnostics.All(); len(all) > 0 {
		t.Fatalf("expected no diagnostics, got:\n%s", summarize(all))
	}
}

// userClasses returns the user class declarations named name, in source
// order.
func userClasses(ctx *pipeline.PipelineContext, name string) []*ast.ClassDecl {
	var out []*ast.ClassDecl
	for _, f := range ctx.Files {
		for _, item := range f.Items {
			if c, ok := item.(*ast.ClassDecl); ok && c.DeclName() == name {
				out = append(out, c)
			}
		}
	}
	return out
}

func userClass(t *testing.T, ctx *pipeline.PipelineContext, name string) *ast.ClassDecl {
	t.Helper()
	found := userClasses(ctx, name)
	if len(found) == 0 {
		t.Fatalf("no user class %s", name)
	}
	return found[0]
}

// topLevel returns the top-level statements of the first user file.
func topLevel(ctx *pipeline.PipelineContext) []ast.Node {
	var out []ast.Node
	for _, item := range ctx.Files[0].Items {
		if _, ok := item.(*ast.ClassDecl); !ok {
			out = append(out, item)
		}
	}
	return out
}

func topVar(t *testing.T, ctx *pipeline.PipelineContext, name string) *ast.VarDecl {
	t.Helper()
	for _, item := range topLevel(ctx) {
		if v, ok := item.(*ast.VarDecl); ok && v.DeclName() == name {
			return v
		}
	}
	t.Fatalf("no top-level var %s", name)
	return nil
}
