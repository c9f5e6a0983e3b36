package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an entity is required to exist and does not.
	ErrNotFound = errors.New("entity was not found")

	// ErrUnauthorized is returned when the requester is not allowed to perform
	// the operation (e.g. deleting someone else's recommendation).
	ErrUnauthorized = errors.New("requester is not authorized for this operation")

	// ErrAccountPending is returned when a programmer account that was not yet
	// approved attempts a search or messaging action.
	ErrAccountPending = errors.New("account is pending approval")

	// ErrAlreadyExists is returned when an insert collides with an existing
	// entity, such as a second conversation for the same pair key.
	ErrAlreadyExists = errors.New("entity already exists")
)

// ValidationError is returned for input rejected before any write is attempted.
type ValidationError struct {
	// Field is the offending input field.
	Field string

	// Reason is a human-readable description.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
