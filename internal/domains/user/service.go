package user

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// Register creates an account with a bcrypt-hashed password.
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)

	// Login verifies credentials and issues a JWT pair.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// GetByUsername returns the public profile of a user.
	GetByUsername(ctx context.Context, username string) (*UserDTO, error)

	// DeleteAccount removes the user together with their posts (and the
	// posts' comments and images), their comments on other posts, and every
	// follow edge they participate in.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
