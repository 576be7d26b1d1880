package comment

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Text string `form:"text" json:"text" binding:"required"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text,
			validation.Required.Error("text is required"),
			validation.Length(1, 3000),
		),
	)
}

type AuthorInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type CommentDTO struct {
	ID      uuid.UUID  `json:"id"`
	Text    string     `json:"text"`
	Created time.Time  `json:"created"`
	PostID  uuid.UUID  `json:"post_id"`
	Author  AuthorInfo `json:"author"`
}
