// Package hash wraps bcrypt for password storage. Digests are salted per
// call, so hashing the same plaintext twice yields different strings, and
// every digest starts with the "$2" bcrypt marker.
package hash

import (
	"golang.org/x/crypto/bcrypt"

	"warbler/errs"
)

// Hash turns a plaintext password into a bcrypt digest at the default cost.
// It returns errs.PasswordRequired when the plaintext is empty.
func Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errs.PasswordRequired
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext hashes to digest under the salt and cost
// embedded in the digest. A mismatch is false, never an error.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
