package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"microblog-backend/internal/domains/group"
)

const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) group.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, g *group.Group) error {
	query := `
		INSERT INTO groups (id, title, slug, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, g.ID, g.Title, g.Slug, g.Description, g.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return group.ErrSlugAlreadyExists
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*group.Group, error) {
	return r.getBy(ctx, "slug = $1", slug)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*group.Group, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *postgresRepository) getBy(ctx context.Context, where string, arg any) (*group.Group, error) {
	query := `
		SELECT id, title, slug, description, created_at
		FROM groups
		WHERE ` + where

	g := &group.Group{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, group.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return g, nil
}

func (r *postgresRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*group.Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, title, slug, description, created_at
		FROM groups
		WHERE id = ANY($1)
	`

	return r.queryGroups(ctx, query, ids)
}

func (r *postgresRepository) List(ctx context.Context) ([]*group.Group, error) {
	query := `
		SELECT id, title, slug, description, created_at
		FROM groups
		ORDER BY title
	`

	return r.queryGroups(ctx, query)
}

func (r *postgresRepository) queryGroups(ctx context.Context, query string, args ...any) ([]*group.Group, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*group.Group
	for rows.Next() {
		g := &group.Group{}
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read groups: %w", err)
	}

	return groups, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if result.RowsAffected() == 0 {
		return group.ErrGroupNotFound
	}
	return nil
}
