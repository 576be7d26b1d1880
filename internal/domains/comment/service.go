package comment

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// Create attaches a comment to postID authored by authorID. Returns
	// post.ErrPostNotFound for an unknown post.
	Create(ctx context.Context, postID, authorID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error)

	ListByPost(ctx context.Context, postID uuid.UUID) ([]*CommentDTO, error)
}
