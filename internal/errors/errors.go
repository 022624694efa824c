// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrUnknownOptionKind = errors.New("unknown option kind")
	ErrConfigInvalid     = errors.New("invalid configuration")
)

// DomainError reports a contract parameter outside the model's domain,
// either at construction or at a per-call override site.
type DomainError struct {
	Field   string
	Value   float64
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain violation [%s]: %s (got %v)", e.Field, e.Message, e.Value)
}

// NewDomainError creates a new DomainError.
func NewDomainError(field string, value float64, message string) *DomainError {
	return &DomainError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ConvergenceError reports a root-finding run that terminated without a root.
type ConvergenceError struct {
	Reason       string
	Iterations   int
	LastEstimate float64
	Residual     float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("solver failed to converge [%s]: %d iterations, last estimate %.6f, residual %.6g",
		e.Reason, e.Iterations, e.LastEstimate, e.Residual)
}

// NewConvergenceError creates a new ConvergenceError.
func NewConvergenceError(reason string, iterations int, lastEstimate, residual float64) *ConvergenceError {
	return &ConvergenceError{
		Reason:       reason,
		Iterations:   iterations,
		LastEstimate: lastEstimate,
		Residual:     residual,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
