// services/errors.go - Error taxonomy shared by all services
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrPermissionDenied is returned by any membership/role gate that fails.
	// Gates fail closed: a missing row, an unknown id, or an unauthenticated
	// principal all produce this error, never a not-found, so callers cannot
	// probe for the existence of resources they cannot see.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when the primary target of a request does not
	// exist (as opposed to a resource referenced inside a permission check).
	ErrNotFound = errors.New("not found")
)

// ValidationError reports malformed or referentially invalid input, scoped to
// the offending field.
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

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
