package http

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// handleBanner answers GET /api with a plain-text identification line.
func (s *Server) handleBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Budget Tracker API v%s", Version)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(s.appMetrics.startTime).Seconds()),
	})
}

// handleReady reports whether the server can actually serve traffic: the
// store must answer and the SPA shell must have loaded.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"store":    "ok",
		"frontend": "ok",
	}
	ready := true

	if err := s.storeCheck(ctx); err != nil {
		checks["store"] = err.Error()
		ready = false
	}
	if s.index == nil {
		checks["frontend"] = "shell not loaded"
		ready = false
	}

	status := http.StatusOK
	body := map[string]any{"status": "ready", "checks": checks}
	if !ready {
		status = http.StatusServiceUnavailable
		body["status"] = "not ready"
	}
	writeJSON(w, status, body)
}

// storeCheck probes the store with a lookup for a user that cannot exist.
// A not-found answer proves the store is reachable.
func (s *Server) storeCheck(ctx context.Context) error {
	_, err := s.store.Get(ctx, "__readiness_probe__")
	if err == nil {
		return nil
	}
	if statusForError(err) == http.StatusNotFound {
		return nil
	}
	return err
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	traceMetrics := s.traceMiddleware.GetMetrics()
	limitMetrics := s.rateLimiter.GetMetrics()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	fmt.Fprintf(w, "http_requests_total %d\n", traceMetrics.TotalRequests)
	fmt.Fprintf(w, "http_request_duration_microseconds_avg %d\n", traceMetrics.AverageResponseTime)
	fmt.Fprintf(w, "accounts_created_total %d\n", atomic.LoadInt64(&s.appMetrics.accountsCreated))
	fmt.Fprintf(w, "accounts_deleted_total %d\n", atomic.LoadInt64(&s.appMetrics.accountsDeleted))
	fmt.Fprintf(w, "transactions_recorded_total %d\n", atomic.LoadInt64(&s.appMetrics.transactionsRecorded))
	fmt.Fprintf(w, "transactions_deleted_total %d\n", atomic.LoadInt64(&s.appMetrics.transactionsDeleted))
	fmt.Fprintf(w, "rate_limit_hits_total %d\n", limitMetrics.TotalHits)
	fmt.Fprintf(w, "rate_limit_active_clients %d\n", limitMetrics.ClientCount)
	fmt.Fprintf(w, "uptime_seconds %d\n", int64(time.Since(s.appMetrics.startTime).Seconds()))
}
