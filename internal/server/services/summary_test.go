package services

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/boksu/booksum/internal/common"
	"github.com/boksu/booksum/internal/logging"
	"github.com/boksu/booksum/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

type stubGenerator struct {
	text  string
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, title string) string {
	g.calls++
	return g.text
}

func (g *stubGenerator) Available() bool { return true }

type stubSynthesizer struct {
	audioURL string
	vtt      string
	calls    int
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text, voiceID string) (string, string) {
	s.calls++
	return s.audioURL, s.vtt
}

type stubCovers struct {
	url   string
	calls int
}

func (c *stubCovers) Lookup(ctx context.Context, title string) string {
	c.calls++
	return c.url
}

type pipeline struct {
	users       *stubUsersRepo
	generator   *stubGenerator
	synthesizer *stubSynthesizer
	covers      *stubCovers
	service     *SummaryService
}

func newPipeline(t *testing.T, users *stubUsersRepo) *pipeline {
	t.Helper()
	p := &pipeline{
		users:       users,
		generator:   &stubGenerator{text: "A long and thoughtful summary of the book."},
		synthesizer: &stubSynthesizer{audioURL: "https://audio/1.wav", vtt: "WEBVTT\n\n"},
		covers:      &stubCovers{url: "https://covers/1.jpg"},
	}
	quota := NewQuotaService(newTestDB(t), &stubRepoManager{users: users})
	p.service = NewSummaryService(quota, p.generator, p.synthesizer, p.covers, testLogger())
	return p
}

func TestGenerate_HappyPath(t *testing.T) {
	p := newPipeline(t, &stubUsersRepo{})

	got, err := p.service.Generate(context.Background(), "u1", "Deep Work", "default")
	require.NoError(t, err)

	assert.NotEmpty(t, got.SummaryID)
	assert.Equal(t, "Deep Work", got.Title)
	assert.Equal(t, "https://audio/1.wav", got.AudioURL)
	assert.Equal(t, "WEBVTT\n\n", got.VTTData)
	assert.Equal(t, "https://covers/1.jpg", got.CoverArtURL)
	assert.Equal(t, "default", got.VoiceID)
	assert.Equal(t, p.generator.text, got.SummaryText)

	assert.Equal(t, 1, p.generator.calls)
	assert.Equal(t, 1, p.synthesizer.calls)
	assert.Equal(t, 1, p.covers.calls)
	assert.Equal(t, 1, p.users.incrementCalls)
}

func TestGenerate_UniqueSummaryIDs(t *testing.T) {
	p := newPipeline(t, &stubUsersRepo{})

	a, err := p.service.Generate(context.Background(), "u1", "x", "default")
	require.NoError(t, err)
	b, err := p.service.Generate(context.Background(), "u1", "x", "default")
	require.NoError(t, err)
	assert.NotEqual(t, a.SummaryID, b.SummaryID)
}

func TestGenerate_QuotaExceeded(t *testing.T) {
	p := newPipeline(t, &stubUsersRepo{users: map[string]*models.User{
		"u1": {ID: "u1", GenerationCount: DailyGenerationLimit, LastGenerationDate: Today()},
	}})

	_, err := p.service.Generate(context.Background(), "u1", "Deep Work", "default")
	require.ErrorIs(t, err, common.ErrorQuotaExceeded)

	// A rejected request touches neither the adapters nor the ledger.
	assert.Zero(t, p.generator.calls)
	assert.Zero(t, p.synthesizer.calls)
	assert.Zero(t, p.covers.calls)
	assert.Zero(t, p.users.incrementCalls)
}

func TestGenerate_LastAllowedRequest(t *testing.T) {
	p := newPipeline(t, &stubUsersRepo{users: map[string]*models.User{
		"u1": {ID: "u1", GenerationCount: DailyGenerationLimit - 1, LastGenerationDate: Today()},
	}})

	_, err := p.service.Generate(context.Background(), "u1", "Deep Work", "default")
	require.NoError(t, err)
	assert.Equal(t, DailyGenerationLimit, p.users.users["u1"].GenerationCount)
}

func TestGenerate_StaleCountRollsOver(t *testing.T) {
	p := newPipeline(t, &stubUsersRepo{users: map[string]*models.User{
		"u1": {ID: "u1", GenerationCount: DailyGenerationLimit, LastGenerationDate: "2020-01-01"},
	}})

	_, err := p.service.Generate(context.Background(), "u1", "Deep Work", "default")
	require.NoError(t, err)
	assert.Equal(t, 1, p.users.users["u1"].GenerationCount)
	assert.Equal(t, Today(), p.users.users["u1"].LastGenerationDate)
}

func TestGenerate_LedgerUnavailable(t *testing.T) {
	p := &pipeline{
		generator:   &stubGenerator{},
		synthesizer: &stubSynthesizer{},
		covers:      &stubCovers{},
	}
	quota := NewQuotaService(nil, &stubRepoManager{users: &stubUsersRepo{}})
	p.service = NewSummaryService(quota, p.generator, p.synthesizer, p.covers, testLogger())

	_, err := p.service.Generate(context.Background(), "u1", "Deep Work", "default")
	require.ErrorIs(t, err, common.ErrorServiceUnavailable)
	assert.Zero(t, p.generator.calls)
}

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("a", 500)
	got := excerpt(long)
	assert.Len(t, []rune(got), summaryExcerptRunes+3)
	assert.True(t, strings.HasSuffix(got, "..."))

	// Short texts pass through unmarked.
	assert.Equal(t, "short", excerpt("short"))
	assert.Equal(t, strings.Repeat("a", summaryExcerptRunes), excerpt(strings.Repeat("a", summaryExcerptRunes)))
}
