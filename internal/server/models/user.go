package models

// User is the per-user quota ledger record. GenerationCount counts the
// successful generations recorded for LastGenerationDate; the counter is
// reset on day rollover by the atomic increment, never in application code.
type User struct {
	ID                 string
	Email              string
	Tier               string
	GenerationCount    int
	LastGenerationDate string
}
