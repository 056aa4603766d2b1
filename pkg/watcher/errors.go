package watcher

import "fmt"

// MissingSignalError indicates that one of the three watchers could not
// produce a signal for an evaluation. The bank substitutes the maximum-risk
// value 1.0 and the evaluation proceeds; the error exists so the omission is
// logged rather than silently absorbed.
type MissingSignalError struct {
	Watcher string // "fast", "memory", or "governance"
	Cause   error  // Underlying error, if any
}

// Error implements the error interface.
func (e *MissingSignalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("watcher signal unavailable [watcher=%s]: %v", e.Watcher, e.Cause)
	}
	return fmt.Sprintf("watcher signal unavailable [watcher=%s]", e.Watcher)
}

// Unwrap returns the underlying cause error.
func (e *MissingSignalError) Unwrap() error {
	return e.Cause
}

// NewMissingSignalError creates a new MissingSignalError.
func NewMissingSignalError(watcher string, cause error) *MissingSignalError {
	return &MissingSignalError{Watcher: watcher, Cause: cause}
}
