// Package apperr defines the error taxonomy shared by services and handlers.
// Services wrap these sentinels with context; handlers translate them to
// HTTP status codes in one place.
package apperr

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound signals the requested resource does not exist (404)
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthenticated signals a missing or unverifiable identity (401)
	ErrUnauthenticated = errors.New("not authorized to access this route")
	// ErrInvalidCredentials signals a failed login attempt (401).
	// The message is identical whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden signals an authenticated caller lacking permission (403)
	ErrForbidden = errors.New("not authorized to perform this action")
	// ErrInvalidToken signals an invalid or expired one-time token (400)
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmailDelivery signals outbound email failure (500)
	ErrEmailDelivery = errors.New("email could not be sent")
)

// FieldError describes a single violated validation rule
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// ValidationError enumerates violated fields for a 400 response
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Msg)
	}
	return strings.Join(parts, "; ")
}

// Add appends a field violation and returns the error for chaining
func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Msg: msg})
	return e
}

// HasErrors reports whether any violation was recorded
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Validation creates a ValidationError with a single field violation
func Validation(field, msg string) *ValidationError {
	return (&ValidationError{}).Add(field, msg)
}
