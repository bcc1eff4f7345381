package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaultpass/batpass-go/internal/middleware"
)

// RouterConfig collects what NewRouter needs. Stats is optional; when nil
// the stats routes are not mounted.
type RouterConfig struct {
	Generator      *GeneratorHandler
	Stats          *StatsHandler
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the HTTP routes. ctx bounds background work owned by the
// middleware stack.
func NewRouter(ctx context.Context, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/v1/strength", cfg.Generator.HandleStrength)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/api/v1/generate", cfg.Generator.HandleGenerate)
	})

	if cfg.Stats != nil {
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			r.Get("/api/v1/stats", cfg.Stats.HandleSummary)
			r.Get("/api/v1/stats/recent", cfg.Stats.HandleRecent)
		})
	}

	return r
}
