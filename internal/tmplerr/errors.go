// Package tmplerr defines the four error kinds the template engine can
// raise: SyntaxError, ReferenceError, ImplementationError, and
// ValidationError. Keeping them as distinct types (rather than a single
// annotated error) lets callers use errors.As to decide how to present a
// failure instead of pattern-matching on message text.
package tmplerr

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// SyntaxError reports a malformed template: an unmatched "${", or a
// control header with the wrong argument count or path requirement.
type SyntaxError struct {
	Offset int // byte offset into the source where the problem starts; -1 if not offset-specific
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Offset < 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s at %d", e.Msg, e.Offset)
}

// NewSyntaxError builds a SyntaxError anchored at offset.
func NewSyntaxError(offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// ReferenceError reports that one or more control expressions could not be
// resolved after the fixpoint reducer ran out of progress. Segments holds
// the verbatim source text of every node still unresolved, in document
// order.
type ReferenceError struct {
	Segments []string
}

func (e *ReferenceError) Error() string {
	if len(e.Segments) == 0 {
		return "unresolvable references"
	}
	var merr *multierror.Error
	for _, seg := range e.Segments {
		merr = multierror.Append(merr, fmt.Errorf("%s", seg))
	}
	merr.ErrorFormat = func(errs []error) string {
		lines := make([]string, len(errs))
		for i, err := range errs {
			lines[i] = "- " + err.Error()
		}
		return "unresolvable references:\n" + strings.Join(lines, "\n")
	}
	return merr.Error()
}

// NewReferenceError builds a ReferenceError from the segments of the nodes
// that never resolved.
func NewReferenceError(segments []string) *ReferenceError {
	return &ReferenceError{Segments: segments}
}

// ImplementationError reports an internal invariant violation: a state the
// engine believes is unreachable (e.g. asking for a path on content that
// parsed as plain text after already checking it parsed as structured
// data). Callers should surface these as bug reports, not as user errors.
type ImplementationError struct {
	Msg string
}

func (e *ImplementationError) Error() string {
	return "internal error: " + e.Msg
}

// NewImplementationError builds an ImplementationError.
func NewImplementationError(format string, args ...any) *ImplementationError {
	return &ImplementationError{Msg: fmt.Sprintf(format, args...)}
}

// ValidationError reports malformed user input at the CLI boundary (for
// example a "-p" flag that isn't "key=value"). The core never raises this;
// only the cmd package does.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError builds a ValidationError.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
