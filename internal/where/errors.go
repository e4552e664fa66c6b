package where

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is wrapped by every TranslationError for a condition
// shape the Parse where grammar cannot express.
var ErrNotImplemented = errors.New("not implemented")

// ErrorCode categorizes translation and validation errors.
type ErrorCode string

const (
	// ErrCodeUnsupportedNegation indicates a Not over a node with no inverse
	// (regex, or).
	ErrCodeUnsupportedNegation ErrorCode = "UNSUPPORTED_NEGATION"

	// ErrCodeUnsupportedCondition indicates an unknown node type or operator.
	ErrCodeUnsupportedCondition ErrorCode = "UNSUPPORTED_CONDITION"

	// ErrCodeConflictingConstraint indicates two constraints on one field
	// that cannot share a where entry.
	ErrCodeConflictingConstraint ErrorCode = "CONFLICTING_CONSTRAINT"

	// ErrCodeInvalidValue indicates a comparison value of the wrong shape.
	ErrCodeInvalidValue ErrorCode = "INVALID_VALUE"

	// ErrCodeInvalidLimit indicates a limit outside 1..1000.
	ErrCodeInvalidLimit ErrorCode = "INVALID_LIMIT"

	// ErrCodeInvalidOffset indicates a negative offset.
	ErrCodeInvalidOffset ErrorCode = "INVALID_OFFSET"
)

// TranslationError reports a condition tree that cannot be expressed as a
// Parse where clause.
type TranslationError struct {
	Code    ErrorCode
	Message string
	Field   string // empty for boolean nodes
}

// Error implements the error interface.
func (e *TranslationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes ErrNotImplemented for unsupported shapes.
func (e *TranslationError) Unwrap() error {
	switch e.Code {
	case ErrCodeUnsupportedNegation, ErrCodeUnsupportedCondition:
		return ErrNotImplemented
	}
	return nil
}

// ValidationError reports pagination parameters Parse would reject.
// It is raised before any network call.
type ValidationError struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnsupported returns true if err reports a condition shape with no Parse
// equivalent. Uses errors.As to handle wrapped errors.
func IsUnsupported(err error) bool {
	var te *TranslationError
	if errors.As(err, &te) {
		return te.Code == ErrCodeUnsupportedNegation || te.Code == ErrCodeUnsupportedCondition
	}
	return false
}

// IsConflict returns true if err reports conflicting constraints on a field.
func IsConflict(err error) bool {
	var te *TranslationError
	if errors.As(err, &te) {
		return te.Code == ErrCodeConflictingConstraint
	}
	return false
}

// IsValidation returns true if err is a pagination ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func unsupportedNegation(what, field string) *TranslationError {
	return &TranslationError{
		Code:    ErrCodeUnsupportedNegation,
		Message: fmt.Sprintf("negating %s is not supported by Parse", what),
		Field:   field,
	}
}

func unsupportedCondition(format string, args ...any) *TranslationError {
	return &TranslationError{
		Code:    ErrCodeUnsupportedCondition,
		Message: fmt.Sprintf(format, args...),
	}
}

func conflict(field, message string) *TranslationError {
	return &TranslationError{
		Code:    ErrCodeConflictingConstraint,
		Message: message,
		Field:   field,
	}
}
