package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the account data-access contract. Implementations:
// postgres (production) and memory (tests).
type Repository interface {
	// Create stores a new user. Returns ErrUsernameAlreadyExists or
	// ErrEmailAlreadyExists on a uniqueness conflict.
	Create(ctx context.Context, user *User) error

	// FindByID returns ErrUserNotFound when no such user exists.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername resolves the public profile identity.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail is used for login.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ListByIDs returns the users whose IDs are in ids; missing IDs are
	// skipped, not an error.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error)

	// Delete removes the user row. Dependent posts, comments and follow
	// edges are cleaned up by the service before this is called.
	Delete(ctx context.Context, id uuid.UUID) error
}
