package diag

import (
	"fmt"
)

// Location points at the offending span inside a script resource.
type Location struct {
	Resource    string
	Line        int // 1-based
	StartColumn int // 0-based, inclusive
	EndColumn   int // 0-based, exclusive
	SourceLine  string
}

// Width returns the number of columns covered by the span.
func (l Location) Width() int {
	if l.EndColumn <= l.StartColumn {
		return 0
	}
	return l.EndColumn - l.StartColumn
}

// Diagnostic describes a failed phase.
type Diagnostic struct {
	Phase    Phase
	Kind     Kind
	Message  string
	Location *Location
	Stack    string
}

// HasLocation reports whether position metadata is available.
func (d *Diagnostic) HasLocation() bool {
	return d != nil && d.Location != nil
}

// Error implements error so a Diagnostic can travel through error-returning
// helpers and logs.
func (d *Diagnostic) Error() string {
	if d == nil {
		return "<nil>"
	}
	if d.Location == nil {
		return d.Message
	}
	return fmt.Sprintf("%s:%d: %s", d.Location.Resource, d.Location.Line, d.Message)
}
