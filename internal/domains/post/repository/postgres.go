package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"microblog-backend/internal/domains/post"
)

const postColumns = "id, text, pub_date, author_id, group_id, image_url"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) post.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, p *post.Post) error {
	query := `
		INSERT INTO posts (id, text, pub_date, author_id, group_id, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, p.ID, p.Text, p.PubDate, p.AuthorID, p.GroupID, p.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p := &post.Post{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Text, &p.PubDate, &p.AuthorID, &p.GroupID, &p.ImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return p, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *post.Post) error {
	query := `
		UPDATE posts
		SET text = $2, group_id = $3, image_url = $4
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, p.ID, p.Text, p.GroupID, p.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts`)
}

func (r *postgresRepository) ListAll(ctx context.Context, limit, offset int) ([]*post.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY pub_date DESC, id
		LIMIT $1 OFFSET $2
	`
	return r.queryPosts(ctx, query, limit, offset)
}

func (r *postgresRepository) CountByGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE group_id = $1`, groupID)
}

func (r *postgresRepository) ListByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*post.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE group_id = $1
		ORDER BY pub_date DESC, id
		LIMIT $2 OFFSET $3
	`
	return r.queryPosts(ctx, query, groupID, limit, offset)
}

func (r *postgresRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID)
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*post.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE author_id = $1
		ORDER BY pub_date DESC, id
		LIMIT $2 OFFSET $3
	`
	return r.queryPosts(ctx, query, authorID, limit, offset)
}

func (r *postgresRepository) CountByAuthors(ctx context.Context, authorIDs []uuid.UUID) (int, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = ANY($1)`, authorIDs)
}

func (r *postgresRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]*post.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE author_id = ANY($1)
		ORDER BY pub_date DESC, id
		LIMIT $2 OFFSET $3
	`
	return r.queryPosts(ctx, query, authorIDs, limit, offset)
}

func (r *postgresRepository) ListIDsByAuthor(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM posts
		WHERE author_id = $1
		ORDER BY pub_date DESC, id
	`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list post ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan post id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read post ids: %w", err)
	}

	return ids, nil
}

func (r *postgresRepository) ClearGroup(ctx context.Context, groupID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE posts SET group_id = NULL WHERE group_id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("failed to clear group references: %w", err)
	}
	return nil
}

func (r *postgresRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) queryPosts(ctx context.Context, query string, args ...any) ([]*post.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*post.Post
	for rows.Next() {
		p := &post.Post{}
		if err := rows.Scan(&p.ID, &p.Text, &p.PubDate, &p.AuthorID, &p.GroupID, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	return posts, nil
}
