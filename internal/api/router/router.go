package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/sy-number-bot/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/sy-number-bot/internal/http/middleware"
	"github.com/wolfman30/sy-number-bot/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	TelegramWebhook *handlers.TelegramWebhookHandler
	MetricsHandler  http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))

	r.Get("/health", handlers.HealthCheck)
	if cfg.TelegramWebhook != nil {
		r.Post("/webhook/{token}", cfg.TelegramWebhook.HandleUpdate)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
