package pipeline_test

import (
	"errors"
	"testing"

	"github.com/go-test/deep"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/config"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/parser"
	"github.com/funvibe/ofront/internal/pipeline"
	"github.com/funvibe/ofront/internal/token"
)

// stage records that it ran and optionally reports one error.
type stage struct {
	name  string
	fail  bool
	trace *[]string
}

func (s *stage) Name() string { return s.name }

func (s *stage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	*s.trace = append(*s.trace, s.name)
	if s.fail {
		ctx.Diagnostics.Diag(diagnostics.NewSyntaxError(s.name+" failed"), token.Window{})
	}
	return ctx
}

func newContext(t *testing.T, opts *config.Options, sources ...pipeline.Source) *pipeline.PipelineContext {
	t.Helper()
	ctx, err := pipeline.NewContext(opts, parser.Frontend{}, sources...)
	if err != nil {
		t.Fatal(err)
	}
	return ctx
}

func TestNewContext(t *testing.T) {
	ctx := newContext(t, nil, pipeline.Source{Path: "a.ol", Code: "var x : 1"})
	if ctx.Options == nil || ctx.Options.Output.Format != config.FormatText {
		t.Errorf("options = %+v", ctx.Options)
	}
	if ctx.UnitID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("unit id not assigned")
	}
	if other := newContext(t, nil); other.UnitID == ctx.UnitID {
		t.Error("two units share an id")
	}
	if got := len(ctx.AllFiles()); got != len(config.BuiltInClassNames) {
		t.Errorf("AllFiles before parsing = %d", got)
	}

	ctx = pipeline.New(&parser.ParserProcessor{}).Run(ctx)
	files := ctx.AllFiles()
	if len(files) != len(config.BuiltInClassNames)+1 {
		t.Fatalf("AllFiles = %d", len(files))
	}
	if !files[0].BuiltIn || files[len(files)-1].Path != "a.ol" {
		t.Error("built-in files do not come first")
	}
}

func TestBootstrapFailure(t *testing.T) {
	_, err := pipeline.NewContext(nil, brokenFrontend{})
	if err == nil {
		t.Fatal("NewContext ignored a bootstrap failure")
	}
}

type brokenFrontend struct{}

func (brokenFrontend) Parse(*ast.Tree, string, string) (*ast.File, error) {
	return nil, errors.New("no parser")
}

func TestRunContinuesAfterErrors(t *testing.T) {
	var trace []string
	ctx := newContext(t, nil)
	pipeline.New(
		&stage{name: "one", fail: true, trace: &trace},
		&stage{name: "two", trace: &trace},
	).Run(ctx)
	if diff := deep.Equal(trace, []string{"one", "two"}); diff != nil {
		t.Error(diff)
	}
}

func TestRunStopsOnFirstError(t *testing.T) {
	var trace []string
	opts := config.Default()
	opts.StopOnFirstError = true
	ctx := newContext(t, opts)
	if ctx.ShouldStop() {
		t.Fatal("ShouldStop before any error")
	}
	pipeline.New(
		&stage{name: "one", trace: &trace},
		&stage{name: "two", fail: true, trace: &trace},
		&stage{name: "three", trace: &trace},
	).Run(ctx)
	if diff := deep.Equal(trace, []string{"one", "two"}); diff != nil {
		t.Error(diff)
	}
	if !ctx.ShouldStop() {
		t.Error("ShouldStop after an error")
	}
}

func TestParserStopsBetweenFiles(t *testing.T) {
	opts := config.Default()
	opts.StopOnFirstError = true
	ctx := newContext(t, opts,
		pipeline.Source{Path: "a.ol", Code: "var x"},
		pipeline.Source{Path: "b.ol", Code: "var y : 1"},
	)
	ctx = pipeline.New(&parser.ParserProcessor{}).Run(ctx)
	if len(ctx.Files) != 1 {
		t.Errorf("parsed %d files after a syntax error", len(ctx.Files))
	}
	if got := ctx.Diagnostics.OfKind(diagnostics.SyntaxError); len(got) != 1 {
		t.Errorf("syntax errors:\n%s", ctx.Diagnostics.Summary())
	}
}
