package api

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/projecthelena/pgsample/internal/db"
)

type SampleHandler struct {
	pool   db.Pool
	logger *log.Logger
}

func NewSampleHandler(pool db.Pool, logger *log.Logger) *SampleHandler {
	return &SampleHandler{pool: pool, logger: logger}
}

// SampleResponse pairs a fresh request ID with the database clock.
type SampleResponse struct {
	RID  string    `json:"rid"`
	Time time.Time `json:"time"`
}

// Sample asks the database for its current time.
// @Summary      Sample query
// @Description  Runs one timestamp query against the database and returns it with a random request ID.
// @Tags         sample
// @Produce      json
// @Success      200  {object} SampleResponse
// @Failure      500  {string} string "Postgres client error"
// @Failure      500  {string} string "Postgres query error"
// @Failure      429  {string} string "rate limit exceeded"
// @Router       /sample [get]
func (h *SampleHandler) Sample(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var now time.Time
	err := db.WithConn(ctx, h.pool, func(c db.Conn) error {
		var err error
		now, err = c.ServerTime(ctx)
		return err
	})
	if err != nil {
		writeDBError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, SampleResponse{
		RID:  uuid.NewString(),
		Time: now.UTC(),
	})
}
