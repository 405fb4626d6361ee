package engine

import (
	"errors"
	"fmt"
)

// InputError represents an input document rejected before grading.
//
// Input errors include:
//   - Unknown kind: the verifier names a kind this engine cannot grade
//   - Invalid spec: the verifier fails structural validation
//   - Invalid bundle: the observed results fail structural validation
//
// A rejected document never yields a verdict: grading is all-or-nothing,
// so a failing verdict always means the checks themselves failed.
type InputError struct {
	// Code identifies the error category.
	Code InputErrorCode

	// Message is a human-readable description.
	Message string

	// Err is the underlying validation error, if any.
	Err error
}

// InputErrorCode categorizes input errors.
type InputErrorCode string

const (
	// ErrCodeUnknownKind indicates an unrecognized verifier kind.
	ErrCodeUnknownKind InputErrorCode = "UNKNOWN_KIND"

	// ErrCodeInvalidSpec indicates a structurally invalid verifier.
	ErrCodeInvalidSpec InputErrorCode = "INVALID_SPEC"

	// ErrCodeInvalidBundle indicates a structurally invalid result bundle.
	ErrCodeInvalidBundle InputErrorCode = "INVALID_BUNDLE"
)

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying validation error.
func (e *InputError) Unwrap() error {
	return e.Err
}

// IsInputError returns true if the error is an input rejection.
// Uses errors.As to handle wrapped errors.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// NewUnknownKindError creates an InputError for an unrecognized kind.
func NewUnknownKindError(kind string) *InputError {
	return &InputError{
		Code:    ErrCodeUnknownKind,
		Message: fmt.Sprintf("unknown verifier kind %q", kind),
	}
}

// NewSpecError creates an InputError for an invalid verifier.
func NewSpecError(msg string, err error) *InputError {
	return &InputError{
		Code:    ErrCodeInvalidSpec,
		Message: msg,
		Err:     err,
	}
}

// NewBundleError creates an InputError for an invalid result bundle.
func NewBundleError(msg string, err error) *InputError {
	return &InputError{
		Code:    ErrCodeInvalidBundle,
		Message: msg,
		Err:     err,
	}
}
