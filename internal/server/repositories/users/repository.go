package users

import (
	"context"

	"github.com/boksu/booksum/internal/server/models"
)

// Repository is the quota-ledger storage contract.
//
// IncrementGenerationCount must be a single atomic write: the day-rollover
// decision is evaluated against the stored last_generation_date inside the
// statement, never against a value read earlier, so concurrent increments
// by the same user never under-count and requests spanning a rollover
// converge.
type Repository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetOrCreate(ctx context.Context, id, email string) (*models.User, error)
	IncrementGenerationCount(ctx context.Context, id, today string) (int, error)
}
