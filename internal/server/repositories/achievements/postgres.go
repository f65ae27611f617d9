// Package achievements provides the PostgreSQL-backed repository for
// unlocked profile milestones.
package achievements

import (
	"context"
	"fmt"

	"github.com/aletheia-net/aletheia/internal/dbx"
	"github.com/aletheia-net/aletheia/internal/server/models"
)

// PostgresRepository implements achievement storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, achievement *models.Achievement) (*models.Achievement, error) {
	query := `
		INSERT INTO achievements (user_id, title, description, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING id, unlocked_at
	`
	err := r.db.QueryRowContext(ctx, query,
		achievement.UserID, achievement.Title, achievement.Description, achievement.Icon,
	).Scan(&achievement.ID, &achievement.UnlockedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return achievement, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Achievement, error) {
	query := `
		SELECT id, user_id, title, description, icon, unlocked_at
		FROM achievements WHERE user_id = $1 ORDER BY unlocked_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Icon, &a.UnlockedAt); err != nil {
			return nil, err
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
