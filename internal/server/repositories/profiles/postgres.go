// Package profiles provides the PostgreSQL-backed repository for user
// profiles and their game-state blob.
package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aletheia-net/aletheia/internal/common"
	"github.com/aletheia-net/aletheia/internal/dbx"
	"github.com/aletheia-net/aletheia/internal/server/models"
)

// PostgresRepository implements profile storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const profileColumns = `id, username, password_hash, display_name, avatar_url, cover_url,
		manifesto, origin_story, stats, tasks, inventory, entropy, following,
		is_verified, is_deactivated, deactivated_until, pending_deletion_at,
		created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	stats, err := json.Marshal(profile.Stats)
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}
	following, err := json.Marshal(emptyIfNil(profile.Following))
	if err != nil {
		return nil, fmt.Errorf("marshal following: %w", err)
	}

	query := `
		INSERT INTO profiles (id, username, password_hash, display_name, manifesto, origin_story, stats, following)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		profile.ID, profile.Username, profile.PasswordHash, profile.DisplayName,
		profile.Manifesto, profile.OriginStory, stats, following,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profile, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE lower(username) = lower($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

// Update overwrites every mutable column of the profile row.
func (r *PostgresRepository) Update(ctx context.Context, profile *models.Profile) error {
	stats, err := json.Marshal(profile.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	following, err := json.Marshal(emptyIfNil(profile.Following))
	if err != nil {
		return fmt.Errorf("marshal following: %w", err)
	}

	query := `
		UPDATE profiles
		SET display_name = $2, avatar_url = $3, cover_url = $4, manifesto = $5,
			origin_story = $6, stats = $7, tasks = $8, inventory = $9,
			entropy = $10, following = $11, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.DisplayName, profile.AvatarURL, profile.CoverURL,
		profile.Manifesto, profile.OriginStory, stats,
		rawOrEmptyArray(profile.Tasks), rawOrEmptyArray(profile.Inventory),
		profile.Entropy, following,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) UpdateStats(ctx context.Context, id string, stats models.Stats) error {
	b, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET stats = $2, updated_at = now() WHERE id = $1`, id, b)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) UpdateFollowing(ctx context.Context, id string, following []string) error {
	b, err := json.Marshal(emptyIfNil(following))
	if err != nil {
		return fmt.Errorf("marshal following: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET following = $2, updated_at = now() WHERE id = $1`, id, b)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) SetModeration(ctx context.Context, id string, deactivated bool, deactivatedUntil, pendingDeletionAt *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET is_deactivated = $2, deactivated_until = $3, pending_deletion_at = $4, updated_at = now()
		WHERE id = $1
	`, id, deactivated, deactivatedUntil, pendingDeletionAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

// Leaderboard returns the top profiles ordered by level, then entropy.
func (r *PostgresRepository) Leaderboard(ctx context.Context, limit int) ([]*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles
		ORDER BY (stats->>'level')::int DESC, entropy DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Profile, error) {
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	var stats, tasks, inventory, following []byte

	err := row.Scan(
		&p.ID, &p.Username, &p.PasswordHash, &p.DisplayName, &p.AvatarURL, &p.CoverURL,
		&p.Manifesto, &p.OriginStory, &stats, &tasks, &inventory, &p.Entropy, &following,
		&p.IsVerified, &p.IsDeactivated, &p.DeactivatedUntil, &p.PendingDeletionAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(stats, &p.Stats); err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	if err := json.Unmarshal(following, &p.Following); err != nil {
		return nil, fmt.Errorf("unmarshal following: %w", err)
	}
	p.Tasks = json.RawMessage(tasks)
	p.Inventory = json.RawMessage(inventory)

	return &p, nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func rawOrEmptyArray(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte(`[]`)
	}
	return raw
}

// isUniqueViolation matches the pgx error text for unique index violations
// without importing the driver's error types into the repository surface.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "SQLSTATE 23505")
}
