package preorder

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyCart blocks leaving MenuSelection with no lines.
var ErrEmptyCart = errors.New("no items selected")

// ErrSubmissionInFlight blocks a second submit while one is pending.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// ErrInvalidTransition is returned when a transition is requested from a
// state that does not allow it.
var ErrInvalidTransition = errors.New("invalid workflow transition")

// ValidationError carries the per-field messages that blocked a transition.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// SubmissionError wraps a failure reported by the order store or transport.
// The draft is kept intact so the user can retry.
type SubmissionError struct {
	Reason error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("order submission failed: %v", e.Reason)
}

func (e *SubmissionError) Unwrap() error {
	return e.Reason
}
