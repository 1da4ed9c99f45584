package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dsemenov/accountd/internal/common"
)

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	accountID := "user-123"

	tok, err := NewIssuer(secret, time.Hour).Issue(accountID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	gotID, err := ParseAccountID(tok, secret)
	if err != nil {
		t.Fatalf("ParseAccountID error: %v", err)
	}
	if gotID != accountID {
		t.Fatalf("account id mismatch: got %q want %q", gotID, accountID)
	}
}

func TestIssue_ExpiryIsIssuancePlusValidity(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	validity := 7 * 24 * time.Hour

	before := time.Now()
	tok, err := NewIssuer(secret, validity).Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	after := time.Now()

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}); err != nil {
		t.Fatalf("parse error: %v", err)
	}

	// expiry must be a numeric timestamp exactly validity after issuance
	gap := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if gap != validity {
		t.Fatalf("expiry gap mismatch: got %v want %v", gap, validity)
	}
	if claims.IssuedAt.Before(before.Truncate(time.Second)) || claims.IssuedAt.After(after) {
		t.Fatalf("issued-at outside the call window: %v", claims.IssuedAt)
	}
	if claims.User.ID != "u1" {
		t.Fatalf("subject mismatch: %q", claims.User.ID)
	}
}

func TestIssue_MissingSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer(nil, time.Hour).Issue("u1")
	if !errors.Is(err, common.ErrorSigning) {
		t.Fatalf("expected ErrorSigning, got %v", err)
	}
	if tok != "" {
		t.Fatalf("no partial token must be returned, got %q", tok)
	}
}

func TestParseAccountID_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := NewIssuer(secret, -1*time.Second).Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = ParseAccountID(tok, secret)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestParseAccountID_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer([]byte("right-secret"), time.Hour).Issue("u2")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := ParseAccountID(tok, []byte("wrong-secret")); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestParseAccountID_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := ParseAccountID("not.a.jwt", []byte("k")); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestParseAccountID_EmptySubject(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := NewIssuer(secret, time.Hour).Issue("")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := ParseAccountID(tok, secret); err == nil {
		t.Fatalf("expected error for token without a subject id")
	}
}
