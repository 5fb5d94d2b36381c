package http

import (
	"net/http"

	"invitation/internal/config"
	"invitation/internal/http/handler"
	mw "invitation/internal/http/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(cfg config.API, store handler.RecordsStore, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Logging(log))
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	rh := &handler.RecordsHandler{Store: store, Validate: handler.NewValidator(), Limit: cfg.ListLimit}

	r.Route("/api", func(r chi.Router) {
		r.Post("/messages", rh.CreateMessage)
		r.Get("/messages", rh.ListMessages)

		r.Post("/preferences", rh.CreatePreference)
		r.Get("/preferences", rh.ListPreferences)
	})

	return r
}
