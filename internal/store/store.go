package store

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNickNameTaken is returned when another identity already uses the nickname.
	ErrNickNameTaken = errors.New("nickname is already taken")
)

// isUniqueConstraintError matches unique-violation errors from all three
// drivers by message, avoiding a dependency on driver error types.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}
