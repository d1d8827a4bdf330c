// Package password provides the credential hashing boundary.
// Callers never see the hashing scheme, only opaque hash and verify.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by Verify when the raw password does not
// match the stored hash.
var ErrMismatch = errors.New("password mismatch")

// Hash derives a storable hash from a raw password.
func Hash(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("generate from password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a raw password against a stored hash.
// It returns ErrMismatch when they do not match.
func Verify(raw, storedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(raw))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return fmt.Errorf("compare hash and password: %w", err)
	}

	return nil
}
