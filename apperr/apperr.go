// Package apperr defines the error taxonomy shared by the data access,
// validation and request layers. Handlers map these to HTTP status codes;
// anything not in this taxonomy is treated as an unexpected failure.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConflict signals a uniqueness violation (duplicate email,
	// duplicate station id).
	ErrConflict = errors.New("already exists")

	// ErrNotFound signals that a referenced entity is absent.
	ErrNotFound = errors.New("not found")
)

// FieldError describes one violated constraint on one payload field.
type FieldError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

// ValidationError aggregates every violated field of a payload, not just
// the first one encountered.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Constraint)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AuthKind discriminates authentication failures.
type AuthKind string

const (
	InvalidToken   AuthKind = "invalid_token"
	ExpiredToken   AuthKind = "expired_token"
	MissingSubject AuthKind = "missing_subject"
	InvalidApiKey  AuthKind = "invalid_api_key"
)

// AuthError is returned whenever a bearer token or API key is rejected.
type AuthError struct {
	Kind AuthKind
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case ExpiredToken:
		return "token has expired"
	case MissingSubject:
		return "token has no subject"
	case InvalidApiKey:
		return "invalid API key"
	default:
		return "invalid token"
	}
}

// PersistenceError wraps an unexpected datastore failure. Expected
// conditions (duplicates, missing rows) never use it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
