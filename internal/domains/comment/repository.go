package comment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, comment *Comment) error

	// ListByPost returns a post's comments oldest first.
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*Comment, error)

	// DeleteByPost removes every comment of a post; the explicit cascade
	// step run when a post is deleted.
	DeleteByPost(ctx context.Context, postID uuid.UUID) error

	// DeleteByAuthor removes every comment written by a user; the explicit
	// cascade step run when an account is deleted.
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error
}
