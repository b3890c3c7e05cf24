package diagnostics

import (
	"fmt"
	"strings"

	"github.com/funvibe/ofront/internal/token"
)

// Variant distinguishes the method and constructor flavours of
// OverloadResolutionFailed.
type Variant int

const (
	NoVariant Variant = iota
	MethodVariant
	ConstructorVariant
)

func (v Variant) String() string {
	switch v {
	case MethodVariant:
		return "method"
	case ConstructorVariant:
		return "constructor"
	default:
		return ""
	}
}

// Related points at another declaration involved in a diagnostic, such as
// the earlier of two conflicting declarations.
type Related struct {
	Name   string
	Window token.Window
}

// Message is the payload of a diagnostic: its kind, a one-line summary and
// an optional multi-line extra message.
type Message struct {
	Kind    Kind
	Variant Variant
	Summary string
	Extra   string
	Chain   []string  // RecursiveInheritance: classes in encounter order
	Related []Related // earlier declarations or overload candidates
}

func NewBuiltInClassRedefinition(name string) Message {
	return Message{
		Kind:    BuiltInClassRedefinition,
		Summary: fmt.Sprintf("class %s redefines a built-in class", name),
	}
}

// NewDeclRedefinition reports a name declared twice. source is the
// formatted source of the earlier declaration.
func NewDeclRedefinition(name string, earlier Related, source string) Message {
	return Message{
		Kind:    DeclRedefinition,
		Summary: fmt.Sprintf("%s is already declared at %s", name, earlier.Window.Start),
		Extra:   source,
		Related: []Related{earlier},
	}
}

// NewRecursiveInheritance reports a cycle. chain is every class encountered
// in order; revisited is the class that closed the cycle.
func NewRecursiveInheritance(chain []string, revisited string) Message {
	path := append(append([]string(nil), chain...), revisited)
	return Message{
		Kind:    RecursiveInheritance,
		Summary: fmt.Sprintf("class %s inherits from itself", revisited),
		Extra:   "inheritance chain: " + strings.Join(path, " -> "),
		Chain:   append([]string(nil), chain...),
	}
}

func NewUnsupportedUserDefinedGenericClass(name string) Message {
	return Message{
		Kind:    UnsupportedUserDefinedGenericClass,
		Summary: fmt.Sprintf("user-defined generic class %s is not supported", name),
	}
}

func NewUndefinedReference(name, extra string) Message {
	return Message{
		Kind:    UndefinedReference,
		Summary: fmt.Sprintf("undefined reference to %s", name),
		Extra:   extra,
	}
}

func NewThisOutOfContext(reason string) Message {
	return Message{
		Kind:    ThisOutOfContext,
		Summary: "'this' used " + reason,
	}
}

// NewOverloadConflict reports a declaration whose signature matches earlier
// candidates of the same group.
func NewOverloadConflict(variant Variant, name string, candidates []Related) Message {
	return Message{
		Kind:    OverloadResolutionFailed,
		Variant: variant,
		Summary: fmt.Sprintf("%s %s conflicts with an earlier overload", variant, name),
		Extra:   candidateList(candidates),
		Related: candidates,
	}
}

// NewOverloadNoMatch reports a call that matches none of the candidates.
func NewOverloadNoMatch(variant Variant, name, args string, candidates []Related) Message {
	return Message{
		Kind:    OverloadResolutionFailed,
		Variant: variant,
		Summary: fmt.Sprintf("no %s %s accepts (%s)", variant, name, args),
		Extra:   candidateList(candidates),
		Related: candidates,
	}
}

func NewMemberAccessOnClass(class, member string) Message {
	return Message{
		Kind:    MemberAccessOnClass,
		Summary: fmt.Sprintf("cannot access member %s on class %s", member, class),
	}
}

func NewMethodReferenceWithoutCall(name string) Message {
	return Message{
		Kind:    MethodReferenceWithoutCall,
		Summary: fmt.Sprintf("method %s is referenced without a call", name),
	}
}

func NewNonReturningCallInExpr(name string) Message {
	return Message{
		Kind:    NonReturningCallInExpr,
		Summary: fmt.Sprintf("%s does not return a value", name),
	}
}

func NewTypeMismatch(expected, actual, context string) Message {
	return Message{
		Kind:    TypeMismatch,
		Summary: fmt.Sprintf("type mismatch in %s: expected %s, found %s", context, expected, actual),
	}
}

func NewUnableToInferVariableType(name, reason string) Message {
	return Message{
		Kind:    UnableToInferVariableType,
		Summary: fmt.Sprintf("unable to infer the type of %s", name),
		Extra:   reason,
	}
}

func NewSyntaxError(msg string) Message {
	return Message{
		Kind:    SyntaxError,
		Summary: msg,
	}
}

func candidateList(candidates []Related) string {
	if len(candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("candidates:")
	for _, c := range candidates {
		sb.WriteString("\n  ")
		sb.WriteString(c.Name)
		sb.WriteString(" at ")
		sb.WriteString(c.Window.Start.String())
	}
	return sb.String()
}
