package quests

import (
	"context"
	"time"

	"github.com/aletheia-net/aletheia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, quest *models.Quest) (*models.Quest, error)
	GetByID(ctx context.Context, id int64) (*models.Quest, error)
	// GetByIDForUpdate locks the quest row so a second completion attempt
	// in a concurrent transaction waits and then sees completed=true.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Quest, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Quest, error)
	// CountActive counts quests that are neither completed nor past expiry.
	CountActive(ctx context.Context, userID string, now time.Time) (int, error)
	MarkCompleted(ctx context.Context, id int64) error
}
