package summaries

import (
	"context"

	"github.com/boksu/booksum/internal/server/models"
)

// Repository stores per-user Summary Records. Save overwrites an existing
// record with the same (user, id); listing is newest first.
type Repository interface {
	Save(ctx context.Context, s *models.Summary) (*models.Summary, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Summary, error)
}
