package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/projecthelena/pgsample/internal/db"
)

const (
	msgClientError = "Postgres client error"
	msgQueryError  = "Postgres query error"
)

// writeDBError logs err and answers with a generic 500. The body only says
// which stage failed; the cause stays in the server log.
func writeDBError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	logger.Printf("ERROR: [%s] %s %s: %v", middleware.GetReqID(r.Context()), r.Method, sanitizeLog(r.URL.Path), err)

	msg := msgQueryError
	if errors.Is(err, db.ErrAcquire) {
		msg = msgClientError
	}
	writeText(w, http.StatusInternalServerError, msg)
}

// sanitizeLog escapes line breaks and drops other control characters so a
// request path cannot forge extra log lines. Output is capped at maxLogField.
func sanitizeLog(s string) string {
	const maxLogField = 200

	var b strings.Builder
	b.Grow(min(len(s), maxLogField))
	for _, r := range s {
		if b.Len() >= maxLogField {
			return b.String()[:maxLogField] + "..."
		}
		switch {
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20 || r == 0x7F:
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
