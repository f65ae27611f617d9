package posts

import (
	"context"

	"github.com/aletheia-net/aletheia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	// GetByIDForUpdate locks the row so concurrent like toggles serialize
	// and resonance stays equal to len(liked_by).
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, limit int) ([]*models.Post, error)
	UpdateLikes(ctx context.Context, id int64, likedBy []string) error
}
