package errs

import "fmt"

// ValidationError signals malformed or out-of-range input (unbalanced journal,
// non-positive principal, mismatched payment amount, ...).
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func Validation(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError signals an unknown account, loan or journal entry.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

func NotFound(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// StateError signals an operation that is invalid for the record's current
// lifecycle state (double-posting, double-reversal, approving a non-pending loan).
type StateError struct {
	Op    string
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s not allowed in state %q", e.Op, e.State)
}

func State(op, state string) *StateError {
	return &StateError{Op: op, State: state}
}

// ComputationError marks a numeric routine that did not converge. It is
// informational: callers keep the best-effort result and may log the marker.
type ComputationError struct {
	Op      string
	Message string
}

func (e *ComputationError) Error() string {
	return e.Op + ": " + e.Message
}

func Computation(op, format string, args ...any) *ComputationError {
	return &ComputationError{Op: op, Message: fmt.Sprintf(format, args...)}
}
