// Package common contains shared sentinel errors used across accountd
// components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound   = errors.New("not found")
	ErrorRepository = errors.New("repository error")

	// Service-level errors.
	ErrorAlreadyExists      = errors.New("identity already exists")
	ErrorCredentialMismatch = errors.New("credential mismatch")

	// Infrastructure errors. Reported to callers as opaque server failures,
	// never with the underlying detail.
	ErrorHashing  = errors.New("hashing error")
	ErrorSigning  = errors.New("signing error")
	ErrorInternal = errors.New("internal error")
)

// ErrorValidation is the sentinel all ValidationError values unwrap to,
// so callers can match the whole class with errors.Is.
var ErrorValidation = errors.New("validation error")

// ValidationError reports every violated input rule of one request,
// not just the first.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Violations, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrorValidation }

// NewValidationError returns nil if no rules were violated.
func NewValidationError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}
