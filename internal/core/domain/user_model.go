package domain

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a tenant of the shared wallet. The numeric ID is the stable
// identity fed to the account-name codec; the username is only the handle
// other users address payments to.
type User struct {
	ID           uint64 `badgerhold:"key"`
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// NewUser validates the username against the codec rules and hashes the
// given clear-text password with bcrypt.
func NewUser(username, password string) (*User, error) {
	if !IsValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}, nil
}

// VerifyPassword reports whether the clear-text password matches the stored
// hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}

// NormalizeUsername lowercases a username for case-insensitive lookups.
func NormalizeUsername(username string) string {
	return strings.ToLower(username)
}
