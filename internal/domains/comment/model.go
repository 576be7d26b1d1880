package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to exactly one post and one author; both references are
// assigned by the service, never taken from the client.
type Comment struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Text     string    `db:"text" json:"text"`
	Created  time.Time `db:"created" json:"created"`
	PostID   uuid.UUID `db:"post_id" json:"post_id"`
	AuthorID uuid.UUID `db:"author_id" json:"author_id"`
}
