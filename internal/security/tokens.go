// Package security holds the operator credential check and the stateless
// session token. There is exactly one authority level: a token proves
// "operator", nothing finer.
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SubjectOperator is the fixed subject carried by every session token.
const SubjectOperator = "admin"

// ErrInvalidToken is returned when a token is malformed or invalid.
var ErrInvalidToken = errors.New("invalid token")

// Tokens issues and verifies HMAC-signed session tokens. Verification is a
// pure recomputation over the presented payload — no server-side session
// state exists, so a token discarded at logout stays verifiable until its
// expiry if the client retains it.
type Tokens struct {
	signingKey []byte
	ttl        time.Duration
}

// NewTokens returns a Tokens signing with the given key. Tokens live for ttl.
func NewTokens(signingKey string, ttl time.Duration) *Tokens {
	return &Tokens{signingKey: []byte(signingKey), ttl: ttl}
}

// TTL returns the token lifetime.
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

// Issue mints a session token expiring ttl after now. Returns the token
// string and its expiry instant.
func (t *Tokens) Issue(now time.Time) (string, time.Time, error) {
	exp := now.Add(t.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   SubjectOperator,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Verify recomputes the signature over the presented payload and checks the
// subject and expiry against now. It answers boolean-style: any malformed
// structure, bad signature, wrong subject, or past expiry is simply not a
// session. The expiry instant is returned when ok.
func (t *Tokens) Verify(token string, now time.Time) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return t.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return time.Time{}, false
	}
	if claims.Subject != SubjectOperator || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
