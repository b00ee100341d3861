package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdouchement/spacetime/internal/server/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, key []byte, signed string) (*jwt.Token, error) {
	t.Helper()
	return jwt.ParseWithClaims(signed, token.NewClaims(), func(*jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
}

func TestSign(t *testing.T) {
	key := []byte("secret")

	signed, err := token.Sign(key, "b329a187-ddf8-4e9b-960d-49c272a58794", time.Hour)
	require.NoError(t, err)
	assert.Regexp(t, `.*\..*\..*`, signed)

	tk, err := parse(t, key, signed)
	require.NoError(t, err)

	subject, err := token.Subject(tk)
	assert.NoError(t, err)
	assert.Equal(t, "b329a187-ddf8-4e9b-960d-49c272a58794", subject)

	claims := tk.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, token.Issuer, claims.Issuer)
	assert.Len(t, claims.ID, 24)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)

	_, err = parse(t, []byte("wrong"), signed)
	assert.Error(t, err)
}

func TestSignWithoutExpiration(t *testing.T) {
	signed, err := token.Sign([]byte("secret"), "someone", 0)
	require.NoError(t, err)

	tk, err := parse(t, []byte("secret"), signed)
	require.NoError(t, err)
	assert.Nil(t, tk.Claims.(*jwt.RegisteredClaims).ExpiresAt)
}

func TestSignExpired(t *testing.T) {
	signed, err := token.Sign([]byte("secret"), "someone", -time.Hour)
	require.NoError(t, err)

	_, err = parse(t, []byte("secret"), signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSignWithoutSubject(t *testing.T) {
	_, err := token.Sign([]byte("secret"), "", time.Hour)
	assert.EqualError(t, err, "no subject provided")
}

func TestSubject(t *testing.T) {
	_, err := token.Subject(nil)
	assert.Error(t, err)

	_, err = token.Subject(&jwt.Token{Claims: &jwt.RegisteredClaims{}})
	assert.EqualError(t, err, "empty subject")
}
