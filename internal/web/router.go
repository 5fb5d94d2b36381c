package web

import (
	"net/http"

	mw "invitation/internal/http/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter wires the invitation page and its form endpoints.
func NewRouter(h *Handler, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Logging(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", h.Page)
	r.Post("/messages", h.SendMessage)
	r.Post("/preferences", h.SavePreferences)
	r.Get("/messages.json", h.ListMessages)
	r.Get("/preferences.json", h.ListPreferences)

	return r
}
