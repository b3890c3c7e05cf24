package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/ofront/internal/token"
)

type ErrorCode string

const (
	ErrS001 ErrorCode = "S001" // built-in class redefinition
	ErrS002 ErrorCode = "S002" // declaration redefinition
	ErrS003 ErrorCode = "S003" // recursive inheritance
	ErrS004 ErrorCode = "S004" // unsupported user-defined generic class
	ErrS005 ErrorCode = "S005" // undefined reference
	ErrS006 ErrorCode = "S006" // this out of context
	ErrS007 ErrorCode = "S007" // overload resolution failed
	ErrS008 ErrorCode = "S008" // member access on class
	ErrS009 ErrorCode = "S009" // method reference without call
	ErrS010 ErrorCode = "S010" // non-returning call in expression
	ErrS011 ErrorCode = "S011" // type mismatch
	ErrS012 ErrorCode = "S012" // unable to infer variable type
	ErrP001 ErrorCode = "P001" // syntax error
)

// Kind is the closed set of diagnostics the front end raises.
type Kind int

const (
	BuiltInClassRedefinition Kind = iota
	DeclRedefinition
	RecursiveInheritance
	UnsupportedUserDefinedGenericClass
	UndefinedReference
	ThisOutOfContext
	OverloadResolutionFailed
	MemberAccessOnClass
	MethodReferenceWithoutCall
	NonReturningCallInExpr
	TypeMismatch
	UnableToInferVariableType
	SyntaxError
)

var kindInfo = [...]struct {
	name string
	code ErrorCode
}{
	BuiltInClassRedefinition:           {"BuiltInClassRedefinition", ErrS001},
	DeclRedefinition:                   {"DeclRedefinition", ErrS002},
	RecursiveInheritance:               {"RecursiveInheritance", ErrS003},
	UnsupportedUserDefinedGenericClass: {"UnsupportedUserDefinedGenericClass", ErrS004},
	UndefinedReference:                 {"UndefinedReference", ErrS005},
	ThisOutOfContext:                   {"ThisOutOfContext", ErrS006},
	OverloadResolutionFailed:           {"OverloadResolutionFailed", ErrS007},
	MemberAccessOnClass:                {"MemberAccessOnClass", ErrS008},
	MethodReferenceWithoutCall:         {"MethodReferenceWithoutCall", ErrS009},
	NonReturningCallInExpr:             {"NonReturningCallInExpr", ErrS010},
	TypeMismatch:                       {"TypeMismatch", ErrS011},
	UnableToInferVariableType:          {"UnableToInferVariableType", ErrS012},
	SyntaxError:                        {"SyntaxError", ErrP001},
}

func (k Kind) String() string {
	if int(k) < len(kindInfo) {
		return kindInfo[k].name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Code() ErrorCode {
	if int(k) < len(kindInfo) {
		return kindInfo[k].code
	}
	return ""
}

// Severity is fixed per kind. Every kind this front end raises is an error.
func (k Kind) Severity() Severity { return SeverityError }

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "error"
	}
}

// Diagnostic is one reported problem: a message anchored at a window.
type Diagnostic struct {
	Message
	Window   token.Window
	Severity Severity
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Window.Start, d.Severity, d.Kind.Code(), d.Summary)
}

// NewError builds a standalone diagnostic, for collaborators such as the
// parser that report through Go errors rather than a Sink.
func NewError(msg Message, w token.Window) *Diagnostic {
	return &Diagnostic{Message: msg, Window: w, Severity: msg.Kind.Severity()}
}

// Sink receives diagnostics raised by the passes.
type Sink interface {
	Diag(msg Message, w token.Window)
}

// Collector is a Sink that only accumulates.
type Collector struct {
	diags []*Diagnostic
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Diag(msg Message, w token.Window) {
	c.diags = append(c.diags, &Diagnostic{
		Message:  msg,
		Window:   w,
		Severity: msg.Kind.Severity(),
	})
}

// All returns every diagnostic in report order.
func (c *Collector) All() []*Diagnostic { return c.diags }

func (c *Collector) Len() int { return len(c.diags) }

// Since returns the diagnostics reported after the collector held n.
func (c *Collector) Since(n int) []*Diagnostic {
	if n >= len(c.diags) {
		return nil
	}
	return c.diags[n:]
}

func (c *Collector) HasErrors() bool { return c.hasSeverity(SeverityError) }

func (c *Collector) HasWarnings() bool { return c.hasSeverity(SeverityWarning) }

func (c *Collector) hasSeverity(s Severity) bool {
	for _, d := range c.diags {
		if d.Severity == s {
			return true
		}
	}
	return false
}

// OfKind returns the diagnostics of one kind in report order.
func (c *Collector) OfKind(k Kind) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range c.diags {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// Sorted returns the diagnostics ordered by file, line and column. Ties keep
// report order.
func (c *Collector) Sorted() []*Diagnostic {
	out := make([]*Diagnostic, len(c.diags))
	copy(out, c.diags)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Window.Start, out[j].Window.Start
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Before(b)
	})
	return out
}

// Summary renders every diagnostic on its own line.
func (c *Collector) Summary() string {
	lines := make([]string, len(c.diags))
	for i, d := range c.diags {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}
