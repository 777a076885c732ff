package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/boksu/booksum/internal/common"
	"github.com/boksu/booksum/internal/dbx"
	"github.com/boksu/booksum/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, tier, generation_count, last_generation_date FROM users
		 WHERE id = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.Tier, &user.GenerationCount, &user.LastGenerationDate)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetOrCreate inserts a zeroed profile for a previously-unseen id and
// returns the stored row either way. The no-op DO UPDATE keeps RETURNING
// populated for existing rows without touching their fields.
func (r *PostgresRepository) GetOrCreate(ctx context.Context, id, email string) (*models.User, error) {
	query :=
		`INSERT INTO users (id, email)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET email = users.email
		 RETURNING id, email, tier, generation_count, last_generation_date
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id, email).
		Scan(&user.ID, &user.Email, &user.Tier, &user.GenerationCount, &user.LastGenerationDate)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// IncrementGenerationCount records one successful generation for the given
// calendar day. The rollover CASE runs inside the upsert against the stored
// date, making the whole operation atomic against concurrent writers.
func (r *PostgresRepository) IncrementGenerationCount(ctx context.Context, id, today string) (int, error) {
	query :=
		`INSERT INTO users (id, generation_count, last_generation_date)
		 VALUES ($1, 1, $2)
		 ON CONFLICT (id) DO UPDATE SET
		   generation_count = CASE WHEN users.last_generation_date = $2
		                           THEN users.generation_count + 1
		                           ELSE 1 END,
		   last_generation_date = $2
		 RETURNING generation_count
		 `

	var count int
	err := r.db.QueryRowContext(ctx, query, id, today).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}
