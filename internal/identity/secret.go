package identity

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrSecretMismatch is returned when a secret does not match its stored hash.
var ErrSecretMismatch = errors.New("secret does not match")

// HashSecret returns a bcrypt hash of secret for storage.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// CheckSecret compares secret against a hash produced by HashSecret.
func CheckSecret(hash, secret string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), prehash(secret))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrSecretMismatch
	}
	if err != nil {
		return fmt.Errorf("check secret: %w", err)
	}
	return nil
}

// prehash keeps secrets of up to 100 multi-byte characters under bcrypt's
// 72-byte input limit.
func prehash(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
