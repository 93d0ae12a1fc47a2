// Package numerr defines the error taxonomy shared by every numeric package.
//
// All failures surface immediately to the caller as an *Error carrying one
// of three codes:
//   - DOMAIN_ERROR: value outside the representable range, zero
//     denominator or divisor, abs of the most negative signed value,
//     zero modulus
//   - TYPE_ERROR: unsupported source kind or target tag, mixed-kind
//     arithmetic while coercion is disabled
//   - CONVERGENCE_ERROR: continued-fraction approximation exceeded its
//     iteration cap
//
// Use the Is* helpers to classify; they see through wrapping.
package numerr

import (
	"errors"
	"fmt"
)

// Code categorizes numeric errors.
type Code string

const (
	// CodeDomain indicates a value outside an operation's domain.
	CodeDomain Code = "DOMAIN_ERROR"

	// CodeType indicates an unsupported kind or tag combination.
	CodeType Code = "TYPE_ERROR"

	// CodeConvergence indicates an iterative algorithm gave up.
	CodeConvergence Code = "CONVERGENCE_ERROR"
)

// Error is the structured error returned by the numeric core.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Op names the failing operation (e.g. "zn.Quo", "coerce.Convert").
	Op string

	// Message is a human-readable description.
	Message string

	// Details contains additional context.
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Domain creates a DOMAIN_ERROR for op.
func Domain(op, format string, args ...any) *Error {
	return &Error{
		Code:    CodeDomain,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// Type creates a TYPE_ERROR for op.
func Type(op, format string, args ...any) *Error {
	return &Error{
		Code:    CodeType,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// Convergence creates a CONVERGENCE_ERROR after iterations steps against a
// cap of maxIterations.
func Convergence(op string, iterations, maxIterations int) *Error {
	return &Error{
		Code:    CodeConvergence,
		Op:      op,
		Message: fmt.Sprintf("no convergence after %d iterations (max %d)", iterations, maxIterations),
		Details: map[string]string{
			"iterations":     fmt.Sprintf("%d", iterations),
			"max_iterations": fmt.Sprintf("%d", maxIterations),
		},
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Code
	}
	return ""
}

// IsDomainError returns true if err is a DOMAIN_ERROR.
// Uses errors.As to handle wrapped errors.
func IsDomainError(err error) bool {
	return CodeOf(err) == CodeDomain
}

// IsTypeError returns true if err is a TYPE_ERROR.
func IsTypeError(err error) bool {
	return CodeOf(err) == CodeType
}

// IsConvergenceError returns true if err is a CONVERGENCE_ERROR.
func IsConvergenceError(err error) bool {
	return CodeOf(err) == CodeConvergence
}
