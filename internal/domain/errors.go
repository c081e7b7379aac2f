package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned across the service boundary. Handlers map these
// to HTTP status codes; repositories wrap storage failures with context
// instead of returning them raw.
var (
	// ErrNotFound indicates the referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrBetAlreadySettled indicates an attempt to settle a bet that has
	// already left the pending state
	ErrBetAlreadySettled = errors.New("bet is already settled")

	// ErrUnauthorized indicates the request lacks a valid authenticated identity
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user does not own the entity
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports a field-level validation failure. It is raised
// before any write is attempted so no partial state is created.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
