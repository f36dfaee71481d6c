package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/projecthelena/pgsample/internal/config"
	"github.com/projecthelena/pgsample/internal/db"
	_ "github.com/projecthelena/pgsample/internal/docs"
	"github.com/projecthelena/pgsample/internal/logging"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/time/rate"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// NewRouter builds the HTTP router. The pool is shared by every handler.
func NewRouter(pool db.Pool, cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	// Only trust X-Forwarded-For when running behind a known proxy.
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	sampleH := NewSampleHandler(pool, logging.New("sample"))
	healthH := NewHealthHandler(pool, logging.New("health"))
	statsH := NewStatsHandler(pool)

	r.Get("/health", healthH.Health)
	r.Get("/readyz", healthH.Readyz)
	r.Get("/stats", statsH.GetStats)

	r.Group(func(sample chi.Router) {
		if cfg.RateLimitRPS > 0 {
			limiter := NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
			sample.Use(RateLimitMiddleware(limiter))
		}
		sample.Get("/sample", sampleH.Sample)
	})

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	return r
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeText writes body exactly, without the trailing newline http.Error adds.
func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
