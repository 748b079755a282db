package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Handler        *Handler
	MetricsHandler http.Handler
}

// NewRouter creates a chi router with all assistant routes configured.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", cfg.Handler.Health)
	r.Post("/chat", cfg.Handler.Chat)
	r.Get("/appointments", cfg.Handler.ListAppointments)
	r.Get("/doctors", cfg.Handler.ListDoctors)
	r.Get("/stats", cfg.Handler.Stats)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
