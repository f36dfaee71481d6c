package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/projecthelena/pgsample/internal/db"
)

const readyTimeout = 2 * time.Second

type HealthHandler struct {
	pool   db.Pool
	logger *log.Logger
}

func NewHealthHandler(pool db.Pool, logger *log.Logger) *HealthHandler {
	return &HealthHandler{pool: pool, logger: logger}
}

// Health reports whether a connection can be checked out. No query is run.
// @Summary      Liveness check
// @Tags         health
// @Produce      plain
// @Success      200  {string} string "OK"
// @Failure      500  {string} string "Postgres client error"
// @Router       /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	err := db.WithConn(r.Context(), h.pool, func(db.Conn) error { return nil })
	if err != nil {
		writeDBError(w, r, h.logger, err)
		return
	}

	writeText(w, http.StatusOK, "OK")
}

// Readyz checks that the timestamp query actually succeeds.
// @Summary      Readiness check
// @Tags         health
// @Produce      json
// @Success      200  {object} object{status=string}
// @Failure      503  {object} object{status=string}
// @Router       /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	err := db.WithConn(ctx, h.pool, func(c db.Conn) error {
		_, err := c.ServerTime(ctx)
		return err
	})
	if err != nil {
		h.logger.Printf("ERROR: [%s] readiness check failed: %v", middleware.GetReqID(r.Context()), err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
