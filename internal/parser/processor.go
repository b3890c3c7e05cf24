package parser

import (
	"errors"

	"github.com/tliron/commonlog"

	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/lexer"
	"github.com/funvibe/ofront/internal/pipeline"
)

var log = commonlog.GetLogger("ofront.parser")

// ParserProcessor lexes and parses every source of the unit into its tree.
type ParserProcessor struct{}

func (pp *ParserProcessor) Name() string { return "parser" }

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	for _, src := range ctx.Sources {
		tokens := lexer.Tokenize(src.Path, src.Code)
		file, errs := Parse(ctx.Tree, src.Path, tokens)
		ctx.Files = append(ctx.Files, file)
		log.Debugf("%s: %d tokens, %d top-level items, %d syntax errors", src.Path, len(tokens), len(file.Items), len(errs))

		for _, err := range errs {
			var d *diagnostics.Diagnostic
			if errors.As(err, &d) {
				ctx.Diagnostics.Diag(d.Message, d.Window)
			}
		}
		if ctx.ShouldStop() {
			break
		}
	}
	return ctx
}
