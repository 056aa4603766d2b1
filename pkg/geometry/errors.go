package geometry

import "fmt"

// OutOfBallError indicates that a point violated the open-ball invariant
// (‖point‖ ≥ 1-epsBall). Callers must treat it as maximal distance and fail
// closed; it is never propagated to an external consumer.
type OutOfBallError struct {
	Norm  float64 // Offending norm
	Limit float64 // 1-epsBall at the time of the check
}

// Error implements the error interface.
func (e *OutOfBallError) Error() string {
	return fmt.Sprintf("point outside open ball [norm=%g, limit=%g]", e.Norm, e.Limit)
}

// NewOutOfBallError creates a new OutOfBallError.
func NewOutOfBallError(norm, limit float64) *OutOfBallError {
	return &OutOfBallError{Norm: norm, Limit: limit}
}

// DegenerateInputError indicates a context vector that cannot be embedded:
// a NaN or infinite component, or an empty vector. Near-zero vectors are NOT
// degenerate; they embed to the origin by definition.
type DegenerateInputError struct {
	Reason string // Why the input is degenerate
}

// Error implements the error interface.
func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate context vector: %s", e.Reason)
}

// NewDegenerateInputError creates a new DegenerateInputError.
func NewDegenerateInputError(reason string) *DegenerateInputError {
	return &DegenerateInputError{Reason: reason}
}
