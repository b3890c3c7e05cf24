package typesystem

import "fmt"

// TypeNotFoundError indicates a class name with no resolved type.
type TypeNotFoundError struct {
	Name string
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("type not found: %s", e.Name)
}

func NewTypeNotFoundError(name string) *TypeNotFoundError {
	return &TypeNotFoundError{Name: name}
}

// WriteOnceError reports an invariant violation on a write-once slot.
// It is raised with panic: it marks a programming bug, never a diagnostic.
type WriteOnceError struct {
	What   string
	Reason string
}

func (e *WriteOnceError) Error() string {
	return fmt.Sprintf("invariant violation: %s %s", e.What, e.Reason)
}
