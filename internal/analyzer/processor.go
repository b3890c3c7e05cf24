package analyzer

import (
	"github.com/funvibe/ofront/internal/pipeline"
)

// SemanticAnalyzerProcessor runs the analysis passes over the built-in and
// user files of a unit.
type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Name() string { return "semantic analysis" }

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	a := New(ContextOf(ctx))
	a.Stop = ctx.ShouldStop
	a.Analyze(ctx.AllFiles())
	return ctx
}

// ContextOf exposes a pipeline unit's tree and registries to the passes.
func ContextOf(ctx *pipeline.PipelineContext) *Context {
	return &Context{
		Tree:      ctx.Tree,
		Types:     ctx.TypeManager,
		Scopes:    ctx.Scopes,
		Overloads: ctx.Overloads,
		Sink:      ctx.Diagnostics,
	}
}
