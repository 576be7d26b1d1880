package group

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create stores a new group. Returns ErrSlugAlreadyExists on a slug
	// uniqueness conflict.
	Create(ctx context.Context, group *Group) error

	// GetBySlug returns ErrGroupNotFound for an unknown slug.
	GetBySlug(ctx context.Context, slug string) (*Group, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Group, error)

	// ListByIDs returns the groups whose IDs are in ids; missing IDs are skipped.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Group, error)

	// List returns all groups ordered by title.
	List(ctx context.Context) ([]*Group, error)

	// Delete removes the group row. Posts referencing it must have their
	// group reference cleared first; the service owns that ordering.
	Delete(ctx context.Context, id uuid.UUID) error
}
