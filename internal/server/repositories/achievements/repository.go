package achievements

import (
	"context"

	"github.com/aletheia-net/aletheia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, achievement *models.Achievement) (*models.Achievement, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Achievement, error)
}
