// Package services contains server-side business logic: the daily quota
// ledger, the summary-generation orchestrator, and the saved-summary library.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/boksu/booksum/internal/common"
	"github.com/boksu/booksum/internal/server/models"
	"github.com/boksu/booksum/internal/server/repositories/repomanager"
)

// DailyGenerationLimit is the number of summary generations a user may
// perform per UTC calendar day.
const DailyGenerationLimit = 100

// Today returns the server's current UTC calendar date as YYYY-MM-DD.
// All quota decisions use this form.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// QuotaService maintains the per-user daily generation ledger.
//
// Read never persists anything: an absent user is reported as a zeroed
// in-memory record. Increment is delegated to the repository's atomic
// upsert, so the day-rollover decision is always evaluated against the
// stored date.
type QuotaService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewQuotaService(db *sql.DB, m repomanager.RepositoryManager) *QuotaService {
	return &QuotaService{db: db, repomanager: m}
}

// Read returns the user's ledger record without creating one.
func (s *QuotaService) Read(ctx context.Context, userID string) (*models.User, error) {
	if s.db == nil {
		return nil, common.ErrorServiceUnavailable
	}
	repo := s.repomanager.Users(s.db)
	user, err := repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &models.User{ID: userID, Tier: "free"}, nil
		}
		return nil, fmt.Errorf("error reading quota ledger: %w", err)
	}
	return user, nil
}

// WithinLimit reports whether the user may generate another summary today.
// A record dated before today always passes: the stored count belongs to a
// previous day and will be reset by the next increment.
func (s *QuotaService) WithinLimit(user *models.User, today string) bool {
	if user.LastGenerationDate != today {
		return true
	}
	return user.GenerationCount < DailyGenerationLimit
}

// Increment records one successful generation for today and returns the
// resulting count. The write is a single atomic statement.
func (s *QuotaService) Increment(ctx context.Context, userID, today string) (int, error) {
	if s.db == nil {
		return 0, common.ErrorServiceUnavailable
	}
	repo := s.repomanager.Users(s.db)
	count, err := repo.IncrementGenerationCount(ctx, userID, today)
	if err != nil {
		return 0, fmt.Errorf("error incrementing quota ledger: %w", err)
	}
	return count, nil
}

// GetOrCreateProfile returns the user's account record, lazily creating it
// on first access. Unlike Read this does persist.
func (s *QuotaService) GetOrCreateProfile(ctx context.Context, userID, email string) (*models.User, error) {
	if s.db == nil {
		return nil, common.ErrorServiceUnavailable
	}
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetOrCreate(ctx, userID, email)
	if err != nil {
		return nil, fmt.Errorf("error loading user profile: %w", err)
	}
	return user, nil
}
