package summaries

import (
	"context"
	"fmt"

	"github.com/boksu/booksum/internal/dbx"
	"github.com/boksu/booksum/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save upserts the record under its (user_id, id) key and returns it with
// the server-assigned creation timestamp.
func (r *PostgresRepository) Save(ctx context.Context, s *models.Summary) (*models.Summary, error) {
	query :=
		`INSERT INTO summaries (user_id, id, title, audio_url, vtt_data, cover_art_url, voice_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, id) DO UPDATE SET
		   title = excluded.title,
		   audio_url = excluded.audio_url,
		   vtt_data = excluded.vtt_data,
		   cover_art_url = excluded.cover_art_url,
		   voice_id = excluded.voice_id
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		s.UserID, s.ID, s.Title, s.AudioURL, s.VTTData, s.CoverArtURL, s.VoiceID).Scan(&s.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Summary, error) {
	query :=
		`SELECT id, user_id, title, audio_url, vtt_data, cover_art_url, voice_id, created_at
		 FROM summaries
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Summary
	for rows.Next() {
		s := &models.Summary{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.AudioURL, &s.VTTData,
			&s.CoverArtURL, &s.VoiceID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
