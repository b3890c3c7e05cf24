package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
)

// Printer renders diagnostics with the offending source line and a caret
// underline of the window.
type Printer struct {
	out     io.Writer
	color   bool
	sources map[string][]string
}

// NewPrinter creates a printer. Colour is used when color is "always", or
// when it is "auto" and out is a terminal.
func NewPrinter(out io.Writer, color string) *Printer {
	p := &Printer{out: out, sources: make(map[string][]string)}
	switch color {
	case "always":
		p.color = true
	case "never":
		p.color = false
	default:
		if f, ok := out.(*os.File); ok {
			p.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	return p
}

// AddSource makes the text of a file available for excerpts.
func (p *Printer) AddSource(path, code string) {
	p.sources[path] = strings.Split(code, "\n")
}

func (p *Printer) Print(diags []*Diagnostic) error {
	for _, d := range diags {
		if err := p.print(d); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) print(d *Diagnostic) error {
	head := fmt.Sprintf("%s[%s]", d.Severity, d.Kind.Code())
	if p.color {
		head = ansiBold + ansiRed + head + ansiReset
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %s\n", d.Window.Start, head, d.Summary)

	if excerpt := p.excerpt(d); excerpt != "" {
		sb.WriteString(excerpt)
	}
	if d.Extra != "" {
		for _, line := range strings.Split(d.Extra, "\n") {
			if p.color {
				line = ansiCyan + line + ansiReset
			}
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(p.out, sb.String())
	return err
}

func (p *Printer) excerpt(d *Diagnostic) string {
	lines, ok := p.sources[d.Window.Start.File]
	start := d.Window.Start
	if !ok || start.Line < 1 || start.Line > len(lines) {
		return ""
	}
	text := strings.TrimRight(lines[start.Line-1], "\r")
	width := 1
	if d.Window.End.Line == start.Line && d.Window.End.Column > start.Column {
		width = d.Window.End.Column - start.Column
	} else if d.Window.End.Line > start.Line {
		width = len(text) - start.Column + 1
	}
	if width < 1 {
		width = 1
	}
	gutter := fmt.Sprintf("%5d | ", start.Line)
	carets := strings.Repeat(" ", len(gutter)+start.Column-1) + strings.Repeat("^", width)
	if p.color {
		carets = ansiRed + carets + ansiReset
	}
	return gutter + text + "\n" + carets + "\n"
}
