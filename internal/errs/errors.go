// Package errs defines the error taxonomy shared by services and handlers.
// Handlers translate these into HTTP status codes and JSON bodies; anything
// not in the taxonomy is treated as an internal error and never leaks its
// text to the client.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned for a failed login. The message is
	// deliberately the same whether the email is unknown or the password is
	// wrong, so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated is returned when credential material is missing
	// (no bearer header, no refresh cookie).
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidToken is returned when a token fails signature, shape or
	// expiry checks.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
)

// FieldError describes a single violated input constraint
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every violated field, not just the first
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(e.Fields))
}

// Add appends a field violation
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any violation was recorded
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ConflictError reports a uniqueness violation (duplicate username/email)
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
