package errors

import (
	"errors"
	"fmt"
)

// ErrIntegrity is returned when a write would break the course → class
// foreign key. Cascading deletes keep it out of normal operation; when it
// does occur the operation is abandoned, never retried.
var ErrIntegrity = errors.New("referential integrity violation")

// ValidationError reports a missing or malformed field. It is raised before
// anything reaches the store.
type ValidationError struct {
	Field  string
	Reason string
	// Err is an optional sentinel callers can match with errors.Is.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidation creates a ValidationError for field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// WrapValidation creates a ValidationError for field that also matches sentinel.
func WrapValidation(field string, sentinel error) *ValidationError {
	return &ValidationError{Field: field, Reason: sentinel.Error(), Err: sentinel}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
