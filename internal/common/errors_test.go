package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError_Empty(t *testing.T) {
	t.Parallel()

	if err := NewValidationError(nil); err != nil {
		t.Fatalf("expected nil for empty violation list, got %v", err)
	}
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	t.Parallel()

	err := NewValidationError([]string{"name is required", "email is invalid"})
	if !errors.Is(err, ErrorValidation) {
		t.Fatalf("expected errors.Is(err, ErrorValidation) to hold, got %v", err)
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(ve.Violations))
	}
}

func TestValidationError_MessageListsAllViolations(t *testing.T) {
	t.Parallel()

	err := NewValidationError([]string{"a", "b", "c"})
	want := "validation error: a; b; c"
	if err.Error() != want {
		t.Fatalf("message mismatch: got %q want %q", err.Error(), want)
	}
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("creating user: %w", ErrorAlreadyExists)
	if !errors.Is(wrapped, ErrorAlreadyExists) {
		t.Fatalf("wrapped sentinel did not match")
	}
}
