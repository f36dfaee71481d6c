package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/projecthelena/pgsample/internal/logging"
)

func TestHealth(t *testing.T) {
	pool := newFakePool()
	h := NewHealthHandler(pool, logging.NewWithWriter(&bytes.Buffer{}, "test"))

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("expected body OK, got %q", w.Body.String())
	}

	inUse, acquires, releases, queries := pool.counts()
	if inUse != 0 || acquires != 1 || releases != 1 {
		t.Errorf("expected one balanced checkout, got inUse=%d acquires=%d releases=%d", inUse, acquires, releases)
	}
	if queries != 0 {
		t.Errorf("health must not query, got %d queries", queries)
	}
}

func TestHealth_AcquireError(t *testing.T) {
	pool := newFakePool()
	pool.acquireErr = errors.New("password authentication failed for user \"app\"")
	var logs bytes.Buffer
	h := NewHealthHandler(pool, logging.NewWithWriter(&logs, "test"))

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w.Body.String() != "Postgres client error" {
		t.Errorf("expected body %q, got %q", "Postgres client error", w.Body.String())
	}
	if logs.Len() == 0 {
		t.Error("expected the failure to be logged")
	}
	if _, _, releases, _ := pool.counts(); releases != 0 {
		t.Errorf("nothing was acquired, got %d releases", releases)
	}
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name       string
		acquireErr error
		queryErr   error
		wantStatus int
		wantBody   string
	}{
		{"ready", nil, nil, http.StatusOK, "ok"},
		{"acquire fails", errors.New("refused"), nil, http.StatusServiceUnavailable, "unavailable"},
		{"query fails", nil, errors.New("syntax"), http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newFakePool()
			pool.acquireErr = tt.acquireErr
			pool.queryErr = tt.queryErr
			h := NewHealthHandler(pool, logging.NewWithWriter(&bytes.Buffer{}, "test"))

			w := httptest.NewRecorder()
			h.Readyz(w, httptest.NewRequest("GET", "/readyz", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			var resp map[string]any
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["status"] != tt.wantBody {
				t.Errorf("expected status %q, got %v", tt.wantBody, resp["status"])
			}
			if inUse, _, _, _ := pool.counts(); inUse != 0 {
				t.Errorf("expected 0 in use, got %d", inUse)
			}
		})
	}
}
