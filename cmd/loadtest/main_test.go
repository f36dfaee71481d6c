package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestRun(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n%5 == 0 {
			http.Error(w, "Postgres query error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"rid":"rid-%d","time":"2026-10-14T09:30:00Z"}`, n)
	}))
	defer ts.Close()

	results := run(ts.Client(), ts.URL+"/sample", 20, 4)

	if len(results) != 20 {
		t.Fatalf("expected 20 results, got %d", len(results))
	}
	ok, failed := 0, 0
	seen := make(map[string]bool)
	for _, r := range results {
		if r.err != nil {
			t.Fatalf("unexpected transport error: %v", r.err)
		}
		switch r.status {
		case http.StatusOK:
			ok++
			if seen[r.rid] {
				t.Errorf("duplicate rid %s", r.rid)
			}
			seen[r.rid] = true
		case http.StatusInternalServerError:
			failed++
		}
	}
	if ok != 16 || failed != 4 {
		t.Errorf("expected 16 ok and 4 failed, got %d and %d", ok, failed)
	}
}

func TestCheckHealth(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))
	defer healthy.Close()

	if err := checkHealth(healthy.Client(), healthy.URL); err != nil {
		t.Errorf("expected healthy, got %v", err)
	}

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Postgres client error", http.StatusInternalServerError)
	}))
	defer down.Close()

	if err := checkHealth(down.Client(), down.URL); err == nil {
		t.Error("expected error for unhealthy service")
	}
}
