package post

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreatePostRequest binds from JSON or multipart form data. The group
// reference is bound manually by the handler for form requests: gin's form
// mapper cannot populate a *uuid.UUID.
type CreatePostRequest struct {
	Text    string     `form:"text" json:"text" binding:"required"`
	GroupID *uuid.UUID `form:"-" json:"group_id,omitempty"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text,
			validation.Required.Error("text is required"),
			validation.Length(1, 10000),
		),
	)
}

type UpdatePostRequest struct {
	Text    string     `form:"text" json:"text" binding:"required"`
	GroupID *uuid.UUID `form:"-" json:"group_id,omitempty"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text,
			validation.Required.Error("text is required"),
			validation.Length(1, 10000),
		),
	)
}

// ImageUpload carries an optional image attached to a create request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AuthorInfo is the slice of the user entity feeds expose.
type AuthorInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// GroupInfo is the slice of the group entity feeds expose.
type GroupInfo struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

type PostDTO struct {
	ID       uuid.UUID  `json:"id"`
	Text     string     `json:"text"`
	PubDate  time.Time  `json:"pub_date"`
	Author   AuthorInfo `json:"author"`
	Group    *GroupInfo `json:"group,omitempty"`
	ImageURL *string    `json:"image_url,omitempty"`
}

// FeedMeta describes the page of a feed. The JSON tags matter: the index
// feed round-trips through the cache as JSON.
type FeedMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Feed is one page of an ordered post list.
type Feed struct {
	Posts []*PostDTO `json:"posts"`
	Meta  FeedMeta   `json:"meta"`
}

// GroupFeed is a group's page header plus one page of its posts.
type GroupFeed struct {
	Group GroupInfo `json:"group"`
	Feed
}

// Profile is an author's page: their posts plus the viewer-dependent
// following flag.
type Profile struct {
	Author    AuthorInfo `json:"author"`
	PostCount int        `json:"post_count"`
	Following bool       `json:"following"`
	Feed
}

// Detail is a single post page; the author's total post count is shown
// alongside it.
type Detail struct {
	Post            PostDTO `json:"post"`
	AuthorPostCount int     `json:"author_post_count"`
}
