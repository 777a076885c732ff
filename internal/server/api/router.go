package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the public surface. The banner, health, and share
// endpoints are open; everything else requires a verified bearer credential.
func NewRouter(h *Handler, secretKey []byte) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/share/{summary_id}", h.GetSharedSummary)

	r.Group(func(r chi.Router) {
		r.Use(Authenticator(secretKey, h.logger))

		r.Post("/generate-summary", h.GenerateSummary)
		r.Post("/save-summary", h.SaveSummary)
		r.Get("/get-library", h.GetLibrary)
		r.Get("/user/profile", h.GetUserProfile)
	})

	return r
}
