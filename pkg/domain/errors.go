package domain

import (
	"errors"
	"fmt"
)

// ErrFormat is the sentinel for malformed declarative nodes: a missing name,
// a suite without a tests sequence, or a terminal test lacking GetActual or
// RunComparison. Format errors are fatal to the run and are raised at the
// offending node, never swallowed.
var ErrFormat = errors.New("malformed test definition")

// FormatError describes why a node failed validation.
type FormatError struct {
	// Node is the display name of the offending node, when known.
	Node string
	// Reason is the human-readable violation.
	Reason string
}

func (e *FormatError) Error() string {
	if e.Node == "" {
		return fmt.Sprintf("malformed test definition: %s", e.Reason)
	}
	return fmt.Sprintf("malformed test definition %q: %s", e.Node, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }
