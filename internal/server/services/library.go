package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/boksu/booksum/internal/common"
	"github.com/boksu/booksum/internal/dbx"
	"github.com/boksu/booksum/internal/server/models"
	"github.com/boksu/booksum/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// LibraryService stores and lists a user's saved summary records.
type LibraryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewLibraryService(db *sql.DB, m repomanager.RepositoryManager) *LibraryService {
	return &LibraryService{db: db, repomanager: m}
}

// Save persists a summary record for the user. A record with the same id
// is overwritten. A missing id gets a fresh one assigned. The write runs in
// a transaction that also guarantees the owner has a profile row.
func (s *LibraryService) Save(ctx context.Context, summary *models.Summary) (*models.Summary, error) {
	if s.db == nil {
		return nil, common.ErrorServiceUnavailable
	}
	if summary.ID == "" {
		summary.ID = uuid.NewString()
	}

	var saved *models.Summary
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).GetOrCreate(ctx, summary.UserID, ""); err != nil {
			return err
		}
		var err error
		saved, err = s.repomanager.Summaries(tx).Save(ctx, summary)
		return err
	}); err != nil {
		return nil, fmt.Errorf("error saving summary: %w", err)
	}
	return saved, nil
}

// List returns the user's saved summaries, newest first.
func (s *LibraryService) List(ctx context.Context, userID string) ([]*models.Summary, error) {
	if s.db == nil {
		return nil, common.ErrorServiceUnavailable
	}
	repo := s.repomanager.Summaries(s.db)
	list, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing summaries: %w", err)
	}
	return list, nil
}
