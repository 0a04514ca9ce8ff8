package domain

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrValidation  = errors.New("validation error")
	ErrResolution  = errors.New("resolution error")
	ErrComputation = errors.New("computation error")
)

// ErrorKind is the wire label of a failure.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindResolution  ErrorKind = "resolution"
	KindComputation ErrorKind = "computation"
)

// ValidationError reports a missing or out-of-range request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ResolutionError wraps a trajectory resolver failure or an unusable
// resolver response.
type ResolutionError struct {
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("trajectory resolution: %v", e.Err)
}

func (e *ResolutionError) Unwrap() []error { return []error{ErrResolution, e.Err} }

// ComputationError wraps anything that went wrong while the pipeline was
// running: non-finite intermediate values or a recovered panic.
type ComputationError struct {
	Stage string
	Err   error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation failed during %s: %v", e.Stage, e.Err)
}

func (e *ComputationError) Unwrap() []error { return []error{ErrComputation, e.Err} }

func outOfRange(field string, v, lo, hi float64) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf("%g is outside [%g, %g]", v, lo, hi)}
}

func missing(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required when orbital_elements is absent"}
}

// KindOf classifies err. Unknown errors are computation failures.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrResolution):
		return KindResolution
	default:
		return KindComputation
	}
}
