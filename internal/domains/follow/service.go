package follow

import (
	"context"

	"github.com/google/uuid"
)

// Service manages subscriptions. Follow and Unfollow are idempotent and
// report only success or failure; callers cannot tell whether a change
// actually happened.
type Service interface {
	// Follow subscribes followerID to the author named by username.
	// A self-follow is a silent no-op, as is following someone already
	// followed. Returns user.ErrUserNotFound for an unknown username.
	Follow(ctx context.Context, followerID uuid.UUID, username string) error

	// Unfollow removes the subscription; removing one that does not exist
	// is a silent no-op.
	Unfollow(ctx context.Context, followerID uuid.UUID, username string) error

	// IsFollowing reports whether viewerID follows authorID. A uuid.Nil
	// viewer (anonymous) is never following anyone.
	IsFollowing(ctx context.Context, viewerID, authorID uuid.UUID) (bool, error)
}
