package models

import (
	"strings"
	"time"

	id "cdp/pkg/domain"
)

// User is a back-office account.
//
// Invariants:
//   - Email is stored lowercased and is unique
//   - SeedAdmin marks the account created on first boot; it cannot be deleted
type User struct {
	ID           id.UserID `json:"id"`
	Email        string    `json:"email"`
	Nom          string    `json:"nom"`
	Role         id.Role   `json:"role"`
	PasswordHash string    `json:"-"`
	SeedAdmin    bool      `json:"seedAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeEmail is the canonical stored form of an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Update carries the optional changes of an account update. Password is the
// new plaintext; it is hashed by the service.
type Update struct {
	Nom      *string
	Role     *id.Role
	Password *string
}

// Session is a signed token issued on login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}
