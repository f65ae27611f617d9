package reports

import (
	"context"

	"github.com/aletheia-net/aletheia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, report *models.Report) (*models.Report, error)
	SetVerdict(ctx context.Context, id int64, verdict, actionTaken string) error
}
