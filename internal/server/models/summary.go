package models

import "time"

// Summary is a saved book-summary record owned by exactly one user.
// Records are immutable after creation; CreatedAt orders library listings.
type Summary struct {
	ID          string
	UserID      string
	Title       string
	AudioURL    string
	VTTData     string
	CoverArtURL string
	VoiceID     string
	CreatedAt   time.Time
}
