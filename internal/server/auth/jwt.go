// Package auth issues and parses the bearer tokens that attest to one
// account identity. Tokens are HS256-signed JWTs carrying a single custom
// claim: {"user": {"id": "<accountID>"}}.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dsemenov/accountd/internal/common"
)

// UserClaim carries the subject account id.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims is the full token payload: registered issuance/expiry timestamps
// plus the user claim.
type Claims struct {
	jwt.RegisteredClaims
	User UserClaim `json:"user"`
}

// Issuer mints signed, time-bounded tokens. The signing secret is injected
// at construction; nothing reads it from the environment at call time.
type Issuer struct {
	secret   []byte
	validity time.Duration
}

// NewIssuer constructs an Issuer. validity is a real duration added to the
// issuance time, e.g. 168h for one week.
func NewIssuer(secret []byte, validity time.Duration) *Issuer {
	return &Issuer{secret: secret, validity: validity}
}

// Issue returns an encoded token bound to exactly one account id.
// No token is returned on failure.
func (i *Issuer) Issue(accountID string) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("%w: signing secret not configured", common.ErrorSigning)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		User: UserClaim{ID: accountID},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorSigning, err)
	}
	return signed, nil
}

// ParseAccountID verifies the signature and expiry of an inbound token and
// returns the subject account id. Used by the HTTP middleware; the service
// core never re-verifies tokens.
func ParseAccountID(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.User.ID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}

	return claims.User.ID, nil
}
