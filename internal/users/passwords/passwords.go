// Package passwords hashes and verifies account passwords with bcrypt.
package passwords

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	dErrors "cdp/pkg/domain-errors"
)

// MinLength is the shortest accepted password, in characters.
const MinLength = 8

// Hasher hashes with a fixed bcrypt cost. The zero value uses bcrypt.DefaultCost.
type Hasher struct {
	Cost int
}

// Hash validates the password length and returns its bcrypt hash.
func (h Hasher) Hash(password string) (string, error) {
	if utf8.RuneCountInString(password) < MinLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("password must be at least %d characters", MinLength))
	}
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "password is too long")
		}
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports a mismatch as unauthorized.
func (Hasher) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return fmt.Errorf("could not verify password: %w", err)
	}
	return nil
}
