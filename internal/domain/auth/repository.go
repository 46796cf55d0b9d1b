package auth

import (
	"context"

	"tillpoint/internal/core/id"
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	// Create inserts a new user. Returns DUPLICATE when the email is taken.
	Create(ctx context.Context, u *User) error

	// GetByEmail retrieves a user by lowercased email.
	// Returns NOT_FOUND if absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID retrieves a user by ID. Returns NOT_FOUND if absent.
	GetByID(ctx context.Context, userID id.ID) (*User, error)
}
