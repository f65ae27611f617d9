// Package reports provides the PostgreSQL-backed repository for moderation
// reports and their verdicts.
package reports

import (
	"context"
	"fmt"

	"github.com/aletheia-net/aletheia/internal/common"
	"github.com/aletheia-net/aletheia/internal/dbx"
	"github.com/aletheia-net/aletheia/internal/server/models"
)

// PostgresRepository implements report storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	query := `
		INSERT INTO reports (reporter_id, target_user_id, target_post_id, reason, ai_verdict, action_taken)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		report.ReporterID, report.TargetUserID, report.TargetPostID,
		report.Reason, report.AIVerdict, report.ActionTaken,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return report, nil
}

func (r *PostgresRepository) SetVerdict(ctx context.Context, id int64, verdict, actionTaken string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reports SET ai_verdict = $2, action_taken = $3 WHERE id = $1`, id, verdict, actionTaken)
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
