package repomanager

import (
	"context"
	"database/sql"

	"github.com/boksu/booksum/internal/dbx"
	"github.com/boksu/booksum/internal/server/repositories/summaries"
	"github.com/boksu/booksum/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX
// (either *sql.DB or a transaction) and exposes a schema migration hook.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Summaries(db dbx.DBTX) summaries.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
