package post

import (
	"time"

	"github.com/google/uuid"
)

// Post is a published entry. PubDate is set once at creation and never
// updated; feeds order by it descending.
type Post struct {
	ID       uuid.UUID  `db:"id" json:"id"`
	Text     string     `db:"text" json:"text"`
	PubDate  time.Time  `db:"pub_date" json:"pub_date"`
	AuthorID uuid.UUID  `db:"author_id" json:"author_id"`
	GroupID  *uuid.UUID `db:"group_id" json:"group_id,omitempty"`
	ImageURL *string    `db:"image_url" json:"image_url,omitempty"`
}
