// Package ofront exposes the front end to Go programs that embed it.
package ofront

import (
	"fmt"
	"os"
	"strings"

	"github.com/funvibe/ofront/internal/analyzer"
	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/config"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/lexer"
	"github.com/funvibe/ofront/internal/parser"
	"github.com/funvibe/ofront/internal/pipeline"
	"github.com/funvibe/ofront/internal/prettyprinter"
)

// Report types
type Report = diagnostics.Report
type Record = diagnostics.Record
type RelatedRecord = diagnostics.RelatedRecord

// Checker collects sources and analyzes them as one compilation unit.
type Checker struct {
	sources []pipeline.Source
	options *config.Options
}

// New creates a Checker with default options.
func New() *Checker {
	return &Checker{options: config.Default()}
}

// StopOnFirstError makes Check end at the first error instead of
// collecting every diagnostic.
func (c *Checker) StopOnFirstError(on bool) *Checker {
	c.options.StopOnFirstError = on
	return c
}

// AddSource queues code under path. Sources are analyzed in the order
// they were added.
func (c *Checker) AddSource(path, code string) *Checker {
	c.sources = append(c.sources, pipeline.Source{Path: path, Code: code})
	return c
}

// AddFile reads path from disk and queues it.
func (c *Checker) AddFile(path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.AddSource(path, string(code))
	return nil
}

// Check analyzes the queued sources. Problems in the sources are reported
// in the Report; the error is reserved for failures of the checker itself.
func (c *Checker) Check() (*Report, error) {
	ctx, err := pipeline.NewContext(c.options, parser.Frontend{}, c.sources...)
	if err != nil {
		return nil, err
	}
	ctx = pipeline.New(
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	).Run(ctx)
	return diagnostics.NewReport(ctx.UnitID.String(), ctx.Diagnostics.Sorted()), nil
}

// Format returns the canonical rendering of code. Code with syntax errors
// is not formatted; the error lists them.
func Format(path, code string) (string, error) {
	file, errs := parser.Parse(ast.NewTree(), path, lexer.Tokenize(path, code))
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return "", fmt.Errorf("%d syntax errors:\n%s", len(errs), strings.Join(msgs, "\n"))
	}
	return prettyprinter.Format(file), nil
}
