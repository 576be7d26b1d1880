package post

import (
	"context"

	"github.com/google/uuid"
)

// Service is the feed builder plus post authoring. Every feed is read-only,
// ordered newest first and paginated with the configured page size.
type Service interface {
	// IndexFeed is the global feed. Pages are served through the cache port
	// with a short TTL; a post deleted inside the TTL window still appears
	// until the entry expires.
	IndexFeed(ctx context.Context, page int) (*Feed, error)

	// GroupFeed returns group.ErrGroupNotFound for an unknown slug.
	GroupFeed(ctx context.Context, slug string, page int) (*GroupFeed, error)

	// ProfileFeed returns user.ErrUserNotFound for an unknown username.
	// viewerID may be uuid.Nil for anonymous viewers; the following flag is
	// then always false.
	ProfileFeed(ctx context.Context, username string, viewerID uuid.UUID, page int) (*Profile, error)

	// FollowFeed lists posts by the authors userID follows.
	FollowFeed(ctx context.Context, userID uuid.UUID, page int) (*Feed, error)

	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)

	// Create publishes a post authored by authorID; the author is never
	// client-supplied. image may be nil.
	Create(ctx context.Context, authorID uuid.UUID, req CreatePostRequest, image *ImageUpload) (*PostDTO, error)

	// Update edits a post. Returns ErrNotPostAuthor when actorID is not the
	// author; the post is left untouched in that case.
	Update(ctx context.Context, postID, actorID uuid.UUID, req UpdatePostRequest) (*PostDTO, error)

	// Delete removes a post, its comments and its stored image. Author-only.
	Delete(ctx context.Context, postID, actorID uuid.UUID) error
}
