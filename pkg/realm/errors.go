package realm

import "fmt"

// NoRealmsConfiguredError indicates that classification was attempted with an
// empty center set. This is a fatal configuration error: the process must not
// start without at least one realm.
type NoRealmsConfiguredError struct{}

// Error implements the error interface.
func (e *NoRealmsConfiguredError) Error() string {
	return "no trust realms configured"
}

// CenterError indicates that a configured realm center could not be embedded
// or violates the ball invariant.
type CenterError struct {
	Label string // Realm label
	Index int    // Position in the configured list
	Cause error  // Underlying error
}

// Error implements the error interface.
func (e *CenterError) Error() string {
	return fmt.Sprintf("invalid realm center [label=%s, index=%d]: %v", e.Label, e.Index, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *CenterError) Unwrap() error {
	return e.Cause
}

// NewCenterError creates a new CenterError.
func NewCenterError(label string, index int, cause error) *CenterError {
	return &CenterError{Label: label, Index: index, Cause: cause}
}
