// @title       pgsample API
// @version     1.0
// @description Health check and sample timestamp query against PostgreSQL.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/projecthelena/pgsample/internal/api"
	"github.com/projecthelena/pgsample/internal/config"
	"github.com/projecthelena/pgsample/internal/db"
	"github.com/projecthelena/pgsample/internal/logging"
)

func main() {
	logger := logging.New("pgsample")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The pool connects lazily, so a database that is down at boot only
	// shows up as failing requests.
	pool, err := db.Open(ctx, cfg.DB)
	if err != nil {
		logger.Fatalf("init database pool: %v", err)
	}
	defer func() { _ = pool.Close() }()

	logger.Printf("database pool ready (type=%s driver=%s host=%s db=%s sslmode=%s)",
		cfg.DB.Type, cfg.DB.Driver, cfg.DB.Host, cfg.DB.Name, cfg.DB.SSLMode)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      api.NewRouter(pool, cfg),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Printf("server running on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("ERROR: listen: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("ERROR: server forced to shutdown: %v", err)
	}

	logger.Println("Server exiting")
}
