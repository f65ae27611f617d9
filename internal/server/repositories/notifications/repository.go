package notifications

import (
	"context"

	"github.com/aletheia-net/aletheia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}
