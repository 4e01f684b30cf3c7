package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Callers branch with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrAuth         = errors.New("authentication failed")
	ErrNotFound     = errors.New("not found")
	ErrWrite        = errors.New("write rejected")
	ErrSubscription = errors.New("subscription failed")
	ErrNoSession    = errors.New("no signed-in user")
	ErrForbidden    = errors.New("access forbidden")
)

// Identity provider failure kinds. Each one also matches ErrAuth.
var (
	ErrInvalidEmail    = fmt.Errorf("%w: invalid email", ErrAuth)
	ErrWeakCredential  = fmt.Errorf("%w: weak credential", ErrAuth)
	ErrAccountExists   = fmt.Errorf("%w: account already exists", ErrAuth)
	ErrAccountNotFound = fmt.Errorf("%w: account not found", ErrAuth)
	ErrBadCredential   = fmt.Errorf("%w: bad credential", ErrAuth)
)

// ErrInvalidToken is a missing, expired or foreign bearer token on the app
// shell. It matches ErrAuth.
var ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrAuth)

// ValidationError reports a local, pre-flight input problem. It never
// reaches the network layer.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
