// Package posts provides the PostgreSQL-backed repository for feed posts.
package posts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aletheia-net/aletheia/internal/common"
	"github.com/aletheia-net/aletheia/internal/dbx"
	"github.com/aletheia-net/aletheia/internal/server/models"
)

// PostgresRepository implements post storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postColumns = `id, author_id, content, liked_by, resonance, is_system_post, created_at`

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	likedBy, err := json.Marshal(emptyIfNil(post.LikedBy))
	if err != nil {
		return nil, fmt.Errorf("marshal liked_by: %w", err)
	}

	query := `
		INSERT INTO posts (author_id, content, liked_by, is_system_post)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		post.AuthorID, post.Content, likedBy, post.IsSystemPost,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateLikes stores the like set and recomputes resonance as its size.
func (r *PostgresRepository) UpdateLikes(ctx context.Context, id int64, likedBy []string) error {
	b, err := json.Marshal(emptyIfNil(likedBy))
	if err != nil {
		return fmt.Errorf("marshal liked_by: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET liked_by = $2, resonance = $3 WHERE id = $1`, id, b, len(likedBy))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Post, error) {
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanPost(row rowScanner) (*models.Post, error) {
	var p models.Post
	var likedBy []byte

	err := row.Scan(&p.ID, &p.AuthorID, &p.Content, &likedBy, &p.Resonance,
		&p.IsSystemPost, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(likedBy, &p.LikedBy); err != nil {
		return nil, fmt.Errorf("unmarshal liked_by: %w", err)
	}

	return &p, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
