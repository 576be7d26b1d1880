package post

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the post data-access contract. List methods return posts
// ordered by pub_date descending; limit/offset are computed by the feed
// builder from already-clamped page parameters.
type Repository interface {
	Create(ctx context.Context, post *Post) error

	// GetByID returns ErrPostNotFound when no such post exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// Update persists text and group changes; pub_date and author are immutable.
	Update(ctx context.Context, post *Post) error

	Delete(ctx context.Context, id uuid.UUID) error

	CountAll(ctx context.Context) (int, error)
	ListAll(ctx context.Context, limit, offset int) ([]*Post, error)

	CountByGroup(ctx context.Context, groupID uuid.UUID) (int, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*Post, error)

	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*Post, error)

	// CountByAuthors/ListByAuthors back the follow feed. An empty authorIDs
	// slice yields zero posts.
	CountByAuthors(ctx context.Context, authorIDs []uuid.UUID) (int, error)
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]*Post, error)

	// ListIDsByAuthor returns every post ID of an author, newest first.
	ListIDsByAuthor(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error)

	// ClearGroup removes the group reference from every post in groupID.
	// Called when the group is deleted; the posts themselves survive.
	ClearGroup(ctx context.Context, groupID uuid.UUID) error
}

// ImageStorage is the object-storage port for post images. Satisfied by the
// MinIO adapter in production and a stub in tests.
type ImageStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}
