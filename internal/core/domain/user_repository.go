package domain

import "context"

// UserRepository is the abstraction for any kind of database intended to
// persist Users.
type UserRepository interface {
	// AddUser persists a new user, assigning its ID. Fails with
	// ErrUsernameTaken if the username is already bound, comparing
	// case-insensitively.
	AddUser(ctx context.Context, user *User) error
	// GetUserByUsername returns the user with the given username, matched
	// case-insensitively. Fails with ErrUserNotFound if absent.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	// GetUserByID returns the user with the given id. Fails with
	// ErrUserNotFound if absent.
	GetUserByID(ctx context.Context, id uint64) (*User, error)
	// GetAllUsers returns every registered user.
	GetAllUsers(ctx context.Context) ([]User, error)
}
