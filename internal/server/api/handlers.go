// Package api exposes the public HTTP surface: summary generation, the
// saved-summary library, profiles, sharing, and health reporting. Handlers
// translate between wire shapes and services; sentinel errors map onto
// HTTP statuses here and nowhere else.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/boksu/booksum/internal/common"
	"github.com/boksu/booksum/internal/logging"
	"github.com/boksu/booksum/internal/server/config"
	"github.com/boksu/booksum/internal/server/models"
	"github.com/boksu/booksum/internal/server/services"
	"github.com/go-chi/chi/v5"
)

const quotaExceededDetail = "Daily generation limit reached (100). Upgrade to premium for unlimited access."

const databaseUnavailableDetail = "Database service is not available. Please configure database credentials."

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	cfg       *config.Config
	logger    logging.Logger
	quota     *services.QuotaService
	summaries *services.SummaryService
	library   *services.LibraryService
	generator services.Generator
}

func NewHandler(cfg *config.Config, logger logging.Logger, quota *services.QuotaService,
	summaries *services.SummaryService, library *services.LibraryService, generator services.Generator) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger.With("module", "api"),
		quota:     quota,
		summaries: summaries,
		library:   library,
		generator: generator,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeError maps sentinel errors onto the HTTP error taxonomy. Anything
// unrecognized is an internal error; its detail never leaks internals.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeDetail(w, http.StatusUnauthorized, authFailureDetail)
	case errors.Is(err, common.ErrorQuotaExceeded):
		writeDetail(w, http.StatusTooManyRequests, quotaExceededDetail)
	case errors.Is(err, common.ErrorServiceUnavailable):
		writeDetail(w, http.StatusServiceUnavailable, databaseUnavailableDetail)
	case errors.Is(err, common.ErrorNotFound):
		writeDetail(w, http.StatusNotFound, "Not found")
	default:
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Root serves the service banner.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":            "boksu.ai Audio Book Summaries API",
		"status":             "running",
		"database_available": h.cfg.DatabaseConfigured(),
	})
}

// Health reports which backends are configured. The service itself is
// healthy as long as it can answer.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	// Synthesis always yields captions plus at least placeholder audio, so
	// speech_available never goes false; the provider credential is
	// reported separately.
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                     "healthy",
		"database_available":         h.cfg.DatabaseConfigured(),
		"generator_available":        h.generator.Available(),
		"speech_available":           true,
		"speech_provider_configured": h.cfg.ElevenLabsAPIKey != "",
		"storage_available":          h.cfg.StorageConfigured(),
	})
}

type generateSummaryRequest struct {
	BookTitle string `json:"book_title"`
	VoiceID   string `json:"voice_id"`
}

type generateSummaryResponse struct {
	SummaryID   string `json:"summary_id"`
	Title       string `json:"title"`
	AudioURL    string `json:"audio_url"`
	VTTData     string `json:"vtt_data"`
	CoverArtURL string `json:"cover_art_url"`
	VoiceID     string `json:"voice_id"`
	SummaryText string `json:"summary_text"`
}

// GenerateSummary runs the full generation pipeline for the caller.
func (h *Handler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, authFailureDetail)
		return
	}

	var req generateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BookTitle == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "book_title is required")
		return
	}
	if req.VoiceID == "" {
		req.VoiceID = "default"
	}

	result, err := h.summaries.Generate(r.Context(), identity.UserID, req.BookTitle, req.VoiceID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, generateSummaryResponse{
		SummaryID:   result.SummaryID,
		Title:       result.Title,
		AudioURL:    result.AudioURL,
		VTTData:     result.VTTData,
		CoverArtURL: result.CoverArtURL,
		VoiceID:     result.VoiceID,
		SummaryText: result.SummaryText,
	})
}

type saveSummaryRequest struct {
	SummaryID   string `json:"summary_id"`
	Title       string `json:"title"`
	AudioURL    string `json:"audio_url"`
	VTTData     string `json:"vtt_data"`
	CoverArtURL string `json:"cover_art_url"`
	VoiceID     string `json:"voice_id"`
}

// SaveSummary persists a generated summary into the caller's library.
func (h *Handler) SaveSummary(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, authFailureDetail)
		return
	}

	var req saveSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SummaryID == "" || req.Title == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "summary_id and title are required")
		return
	}

	_, err := h.library.Save(r.Context(), &models.Summary{
		ID:          req.SummaryID,
		UserID:      identity.UserID,
		Title:       req.Title,
		AudioURL:    req.AudioURL,
		VTTData:     req.VTTData,
		CoverArtURL: req.CoverArtURL,
		VoiceID:     req.VoiceID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Summary saved successfully"})
}

type libraryItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	AudioURL    string `json:"audio_url"`
	VTTData     string `json:"vtt_data"`
	CoverArtURL string `json:"cover_art_url"`
	VoiceID     string `json:"voice_id"`
	CreatedAt   string `json:"created_at"`
}

// GetLibrary lists the caller's saved summaries, newest first.
func (h *Handler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, authFailureDetail)
		return
	}

	list, err := h.library.List(r.Context(), identity.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]libraryItem, 0, len(list))
	for _, s := range list {
		items = append(items, libraryItem{
			ID:          s.ID,
			Title:       s.Title,
			AudioURL:    s.AudioURL,
			VTTData:     s.VTTData,
			CoverArtURL: s.CoverArtURL,
			VoiceID:     s.VoiceID,
			CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"library": items})
}

// GetSharedSummary serves a shared summary by id. Cross-user lookup is not
// implemented; the response is a fixed placeholder payload.
func (h *Handler) GetSharedSummary(w http.ResponseWriter, r *http.Request) {
	summaryID := chi.URLParam(r, "summary_id")
	h.logger.Info(r.Context(), "shared summary requested", "summary_id", summaryID)

	writeJSON(w, http.StatusOK, map[string]string{
		"title":         "Shared Book Summary",
		"audio_url":     "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav",
		"cover_art_url": "https://via.placeholder.com/300x450/f3f4f6/374151?text=Shared+Book",
	})
}

// GetUserProfile returns the caller's account record, creating it on first
// access.
func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, authFailureDetail)
		return
	}

	user, err := h.quota.GetOrCreateProfile(r.Context(), identity.UserID, identity.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"email":                  user.Email,
		"tier":                   user.Tier,
		"daily_generation_count": user.GenerationCount,
		"last_generation_date":   user.LastGenerationDate,
	})
}
