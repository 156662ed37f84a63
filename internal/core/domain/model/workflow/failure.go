package workflow

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidTransition covers both illegal edges and failed guards.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrInvalidAmount covers out-of-domain monetary input.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Kind classifies a Failure.
type Kind int

// Failure kinds.
const (
	IllegalTransition Kind = iota + 1
	GuardFailure
	InvalidAmount
)

// String returns the snake_case name used in API payloads.
func (k Kind) String() string {
	switch k {
	case IllegalTransition:
		return "illegal_transition"
	case GuardFailure:
		return "guard_failure"
	case InvalidAmount:
		return "invalid_amount"
	default:
		return "unknown"
	}
}

// Failure is one problem found while validating a transition or an amount.
// Field names the auxiliary input a guard inspected, empty for illegal edges.
type Failure struct {
	Kind    Kind
	Field   string
	Message string
}

// Illegal reports a candidate outside the legal-next set of from.
func Illegal(from, to fmt.Stringer) Failure {
	return Failure{
		Kind:    IllegalTransition,
		Message: fmt.Sprintf("illegal transition from %s to %s", from, to),
	}
}

// Unknown reports a status value outside the enumeration.
func Unknown(role string, s fmt.Stringer) Failure {
	return Failure{
		Kind:    IllegalTransition,
		Field:   role,
		Message: fmt.Sprintf("%s status %q is not a known status", role, s.String()),
	}
}

// Guard reports a graph-legal transition whose precondition on field is absent.
func Guard(field, message string) Failure {
	return Failure{Kind: GuardFailure, Field: field, Message: message}
}

// Amount reports an out-of-domain amount on field.
func Amount(field, message string) Failure {
	return Failure{Kind: InvalidAmount, Field: field, Message: message}
}

// Error returns the message.
func (f Failure) Error() string {
	return f.Message
}

// Unwrap maps the kind to ErrInvalidAmount or ErrInvalidTransition.
func (f Failure) Unwrap() error {
	if f.Kind == InvalidAmount {
		return ErrInvalidAmount
	}
	return ErrInvalidTransition
}

// Failures is the accumulated result of a validation. Empty means success.
type Failures []Failure

// OK reports whether no failure was recorded.
func (fs Failures) OK() bool {
	return len(fs) == 0
}

// Messages returns the human-readable reasons in the order they were found.
func (fs Failures) Messages() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Message
	}
	return out
}

// Has reports whether at least one failure of kind k was recorded.
func (fs Failures) Has(k Kind) bool {
	return slices.ContainsFunc(fs, func(f Failure) bool { return f.Kind == k })
}

// Count returns the number of failures of kind k.
func (fs Failures) Count(k Kind) int {
	n := 0
	for _, f := range fs {
		if f.Kind == k {
			n++
		}
	}
	return n
}

// Err returns nil for an empty list and a *ValidationError otherwise.
func (fs Failures) Err() error {
	if len(fs) == 0 {
		return nil
	}
	return &ValidationError{Failures: slices.Clone(fs)}
}

// ValidationError carries the complete failure list across layers.
type ValidationError struct {
	Failures Failures
}

// Error joins the failure messages.
func (e *ValidationError) Error() string {
	return strings.Join(e.Failures.Messages(), "; ")
}

// Unwrap exposes each failure so errors.Is sees the sentinel of every kind.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		out[i] = f
	}
	return out
}

// FailuresOf extracts the failure list from err, if it carries one.
func FailuresOf(err error) (Failures, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Failures, true
	}
	return nil, false
}
