package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"microblog-backend/internal/domains/comment"
)

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) comment.Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, c *comment.Comment) error {
	query := `
		INSERT INTO comments (id, text, created, post_id, author_id)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, c.ID, c.Text, c.Created, c.PostID, c.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]*comment.Comment, error) {
	query := `
		SELECT id, text, created, post_id, author_id
		FROM comments
		WHERE post_id = $1
		ORDER BY created, id`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*comment.Comment
	for rows.Next() {
		c := &comment.Comment{}
		if err := rows.Scan(&c.ID, &c.Text, &c.Created, &c.PostID, &c.AuthorID); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *postgresRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete comments by post: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM comments WHERE author_id = $1`, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete comments by author: %w", err)
	}
	return nil
}
