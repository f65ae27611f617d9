package profiles

import (
	"context"
	"time"

	"github.com/aletheia-net/aletheia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	// GetByIDForUpdate locks the row for the duration of the surrounding
	// transaction so concurrent reward applications serialize.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	UpdateStats(ctx context.Context, id string, stats models.Stats) error
	UpdateFollowing(ctx context.Context, id string, following []string) error
	SetModeration(ctx context.Context, id string, deactivated bool, deactivatedUntil, pendingDeletionAt *time.Time) error
	Leaderboard(ctx context.Context, limit int) ([]*models.Profile, error)
}
