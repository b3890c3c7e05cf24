package pipeline

import (
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("ofront.pipeline")

// Processor is one stage of the pipeline.
type Processor interface {
	Name() string
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		before := ctx.Diagnostics.Len()
		log.Infof("unit %s: %s started", ctx.UnitID, processor.Name())
		ctx = processor.Process(ctx)
		log.Infof("unit %s: %s finished, %d new diagnostics", ctx.UnitID, processor.Name(), ctx.Diagnostics.Len()-before)
		// Continue on errors to collect diagnostics from all stages,
		// unless the session asked to stop at the first one.
		if ctx.ShouldStop() {
			log.Noticef("unit %s: stopping after %s on first error", ctx.UnitID, processor.Name())
			break
		}
	}
	return ctx
}
