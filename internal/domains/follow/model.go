package follow

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge: UserID (the follower) receives AuthorID's posts
// in their follow feed. The (user, author) pair is unique.
type Follow struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
