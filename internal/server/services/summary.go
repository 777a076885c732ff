package services

import (
	"context"

	"github.com/boksu/booksum/internal/common"
	"github.com/boksu/booksum/internal/logging"
	"github.com/google/uuid"
)

// summaryExcerptRunes bounds the prose excerpt included in generation
// responses; the full text lives in the caption track.
const summaryExcerptRunes = 200

// Generator produces summary prose for a book title. Implementations never
// fail: provider problems degrade to deterministic fallback text.
type Generator interface {
	Generate(ctx context.Context, title string) string
	Available() bool
}

// Synthesizer converts text into an audio URL plus a WEBVTT caption track.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (string, string)
}

// CoverFinder resolves a cover image URL for a title.
type CoverFinder interface {
	Lookup(ctx context.Context, title string) string
}

// GeneratedSummary is the assembled result of one generation request.
type GeneratedSummary struct {
	SummaryID   string
	Title       string
	AudioURL    string
	VTTData     string
	CoverArtURL string
	VoiceID     string
	SummaryText string
}

// SummaryService orchestrates one generation request: quota check, the
// three adapters, then the quota increment. The increment happens only
// after every adapter has produced its value, so a failed request never
// consumes quota.
type SummaryService struct {
	quota       *QuotaService
	generator   Generator
	synthesizer Synthesizer
	covers      CoverFinder
	logger      logging.Logger
}

func NewSummaryService(quota *QuotaService, g Generator, s Synthesizer, c CoverFinder, logger logging.Logger) *SummaryService {
	return &SummaryService{
		quota:       quota,
		generator:   g,
		synthesizer: s,
		covers:      c,
		logger:      logger.With("module", "summary"),
	}
}

// Generate runs the full pipeline for one request. It returns
// common.ErrorQuotaExceeded when the user is at today's limit and
// common.ErrorServiceUnavailable when the ledger backend is missing.
func (s *SummaryService) Generate(ctx context.Context, userID, title, voiceID string) (*GeneratedSummary, error) {
	today := Today()

	user, err := s.quota.Read(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !s.quota.WithinLimit(user, today) {
		s.logger.Warn(ctx, "generation rejected, daily limit reached", "user", userID, "count", user.GenerationCount)
		return nil, common.ErrorQuotaExceeded
	}

	text := s.generator.Generate(ctx, title)
	audioURL, vtt := s.synthesizer.Synthesize(ctx, text, voiceID)
	coverURL := s.covers.Lookup(ctx, title)

	count, err := s.quota.Increment(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "summary generated", "user", userID, "title", title, "count_today", count)

	return &GeneratedSummary{
		SummaryID:   uuid.NewString(),
		Title:       title,
		AudioURL:    audioURL,
		VTTData:     vtt,
		CoverArtURL: coverURL,
		VoiceID:     voiceID,
		SummaryText: excerpt(text),
	}, nil
}

// excerpt truncates prose to the response excerpt size, marking truncation
// with an ellipsis. Short texts are returned unchanged.
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryExcerptRunes {
		return text
	}
	return string(runes[:summaryExcerptRunes]) + "..."
}
