package api

import (
	"net/http"

	"github.com/projecthelena/pgsample/internal/db"
)

type StatsHandler struct {
	pool db.Pool
}

func NewStatsHandler(pool db.Pool) *StatsHandler {
	return &StatsHandler{pool: pool}
}

// GetStats returns the service version and a snapshot of pool bookkeeping.
// @Summary      Get pool stats
// @Tags         stats
// @Produce      json
// @Success      200  {object} object{version=string,pool=db.Stats}
// @Router       /stats [get]
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version": Version,
		"pool":    h.pool.Stats(),
	})
}
