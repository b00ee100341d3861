// Package token issues and parses the JWT used to identify the principal of a request.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Issuer is the `iss` claim of the issued tokens.
const Issuer = "spacetime"

// NewClaims returns empty claims ready to be filled by a parser.
func NewClaims() jwt.Claims {
	return new(jwt.RegisteredClaims)
}

// Sign returns a signed JWT (HS256) whose subject is the given user id.
// A zero ttl generates a token without expiration.
func Sign(signingKey []byte, userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("no subject provided")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:       SecureToken(24),
		Issuer:   Issuer,
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	return token, errors.Wrap(err, "could not sign token")
}

// Subject returns the subject of the given parsed token.
func Subject(t *jwt.Token) (string, error) {
	if t == nil || t.Claims == nil {
		return "", errors.New("no claims")
	}

	subject, err := t.Claims.GetSubject()
	if err != nil {
		return "", errors.Wrap(err, "could not read subject")
	}
	if subject == "" {
		return "", errors.New("empty subject")
	}
	return subject, nil
}
