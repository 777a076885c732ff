package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/boksu/booksum/internal/common"
	"github.com/boksu/booksum/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSummariesRepo is an in-memory summaries.Repository keyed by (user, id).
type stubSummariesRepo struct {
	saved   []*models.Summary
	saveErr error
	listErr error
}

func (r *stubSummariesRepo) Save(ctx context.Context, s *models.Summary) (*models.Summary, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	for i, existing := range r.saved {
		if existing.UserID == s.UserID && existing.ID == s.ID {
			r.saved[i] = s
			cp := *s
			return &cp, nil
		}
	}
	cp := *s
	cp.CreatedAt = time.Now()
	r.saved = append(r.saved, &cp)
	out := cp
	return &out, nil
}

func (r *stubSummariesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Summary, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*models.Summary
	for _, s := range r.saved {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

// newTestDBMock returns a sqlmock-backed handle for tests that exercise the
// transactional Save path.
func newTestDBMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestLibrarySave(t *testing.T) {
	db, mock := newTestDBMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	users := &stubUsersRepo{}
	repo := &stubSummariesRepo{}
	s := NewLibraryService(db, &stubRepoManager{users: users, summaries: repo})

	saved, err := s.Save(context.Background(), &models.Summary{
		ID:     "s1",
		UserID: "u1",
		Title:  "Atomic Habits",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	require.Len(t, repo.saved, 1)

	// Saving guarantees the owner has a profile row.
	assert.Equal(t, 1, users.getOrCreateCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLibrarySave_AssignsID(t *testing.T) {
	db, mock := newTestDBMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &stubSummariesRepo{}
	s := NewLibraryService(db, &stubRepoManager{users: &stubUsersRepo{}, summaries: repo})

	saved, err := s.Save(context.Background(), &models.Summary{UserID: "u1", Title: "x"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
}

func TestLibrarySave_Overwrite(t *testing.T) {
	db, mock := newTestDBMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &stubSummariesRepo{}
	s := NewLibraryService(db, &stubRepoManager{users: &stubUsersRepo{}, summaries: repo})

	_, err := s.Save(context.Background(), &models.Summary{ID: "s1", UserID: "u1", Title: "old"})
	require.NoError(t, err)
	_, err = s.Save(context.Background(), &models.Summary{ID: "s1", UserID: "u1", Title: "new"})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "new", repo.saved[0].Title)
}

func TestLibrarySave_RepoError_RollsBack(t *testing.T) {
	db, mock := newTestDBMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &stubSummariesRepo{saveErr: errors.New("boom")}
	s := NewLibraryService(db, &stubRepoManager{users: &stubUsersRepo{}, summaries: repo})

	_, err := s.Save(context.Background(), &models.Summary{ID: "s1", UserID: "u1"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLibraryList_FiltersByUser(t *testing.T) {
	repo := &stubSummariesRepo{saved: []*models.Summary{
		{ID: "s1", UserID: "u1"},
		{ID: "s2", UserID: "u2"},
		{ID: "s3", UserID: "u1"},
	}}
	s := NewLibraryService(newTestDB(t), &stubRepoManager{summaries: repo})

	list, err := s.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestLibrary_NilDB_ServiceUnavailable(t *testing.T) {
	s := NewLibraryService(nil, &stubRepoManager{summaries: &stubSummariesRepo{}})

	_, err := s.Save(context.Background(), &models.Summary{ID: "s1", UserID: "u1"})
	assert.ErrorIs(t, err, common.ErrorServiceUnavailable)

	_, err = s.List(context.Background(), "u1")
	assert.ErrorIs(t, err, common.ErrorServiceUnavailable)
}
