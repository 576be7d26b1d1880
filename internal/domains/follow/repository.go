package follow

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts a follow edge. Returns ErrAlreadyFollowing when the
	// (user, author) pair already exists; the storage-level uniqueness
	// constraint resolves concurrent inserts.
	Create(ctx context.Context, follow *Follow) error

	// Delete removes the edge by exact (user, author) match. Deleting a
	// missing edge is not an error.
	Delete(ctx context.Context, userID, authorID uuid.UUID) error

	Exists(ctx context.Context, userID, authorID uuid.UUID) (bool, error)

	// ListAuthorIDs returns the IDs of every author userID follows.
	ListAuthorIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// DeleteByUser removes every edge the user participates in, on either
	// side; the explicit cascade step run when an account is deleted.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
