package token

import (
	"crypto/rand"
	"math/big"
)

const base58 = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// SecureToken generates a unique random token made of base58 characters.
// It is used as token identifier (jti).
func SecureToken(length int) string {
	token := make([]byte, length)
	max := big.NewInt(int64(len(base58)))

	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // should never occured because max > 0
		}
		token[i] = base58[n.Int64()]
	}

	return string(token)
}
