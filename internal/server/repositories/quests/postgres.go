// Package quests provides the PostgreSQL-backed repository for quest rows.
package quests

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aletheia-net/aletheia/internal/common"
	"github.com/aletheia-net/aletheia/internal/dbx"
	"github.com/aletheia-net/aletheia/internal/server/models"
)

// PostgresRepository implements quest storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const questColumns = `id, user_id, text, difficulty, xp_reward, stat_reward, expires_at, completed, created_at`

func (r *PostgresRepository) Create(ctx context.Context, quest *models.Quest) (*models.Quest, error) {
	statReward, err := json.Marshal(quest.StatReward)
	if err != nil {
		return nil, fmt.Errorf("marshal stat reward: %w", err)
	}

	query := `
		INSERT INTO quests (user_id, text, difficulty, xp_reward, stat_reward, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		quest.UserID, quest.Text, quest.Difficulty, quest.XPReward, statReward, quest.ExpiresAt,
	).Scan(&quest.ID, &quest.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return quest, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) CountActive(ctx context.Context, userID string, now time.Time) (int, error) {
	query := `
		SELECT count(*) FROM quests
		WHERE user_id = $1 AND completed = false AND (expires_at IS NULL OR expires_at > $2)
	`
	var n int
	if err := r.db.QueryRowContext(ctx, query, userID, now).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// MarkCompleted flips completed to true. The caller is expected to have
// checked the lifecycle state under a row lock first.
func (r *PostgresRepository) MarkCompleted(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE quests SET completed = true WHERE id = $1 AND completed = false`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorQuestCompleted
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Quest, error) {
	q, err := scanQuest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return q, nil
}

func scanQuest(row rowScanner) (*models.Quest, error) {
	var q models.Quest
	var statReward []byte

	err := row.Scan(&q.ID, &q.UserID, &q.Text, &q.Difficulty, &q.XPReward,
		&statReward, &q.ExpiresAt, &q.Completed, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(statReward, &q.StatReward); err != nil {
		return nil, fmt.Errorf("unmarshal stat reward: %w", err)
	}

	return &q, nil
}
