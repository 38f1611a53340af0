package http

import (
	"context"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"budget/internal/events"
	"budget/internal/log"
	"budget/internal/middleware/ratelimit"
	"budget/internal/middleware/security"
	"budget/internal/middleware/trace"
	"budget/internal/store"
	appweb "budget/web"
)

// Version reported by the API banner.
const Version = "1.0.0"

// Options tunes the server beyond its dependencies.
type Options struct {
	RateLimitPerMinute int
}

// Server serves the REST API and the embedded single-page frontend.
type Server struct {
	http.Server

	store     store.Store
	publisher events.Publisher
	logger    *log.Logger

	rateLimiter     *ratelimit.Limiter
	traceMiddleware *trace.Middleware

	index []byte

	appMetrics   *appMetrics
	shutdownOnce sync.Once
}

// appMetrics tracks application-level counters for /metrics.
type appMetrics struct {
	startTime            time.Time
	accountsCreated      int64
	accountsDeleted      int64
	transactionsRecorded int64
	transactionsDeleted  int64
}

// NewServer wires routes and middleware, returning a ready-to-run server.
// publisher may be nil to disable ledger events.
func NewServer(addr string, st store.Store, publisher events.Publisher, logger *log.Logger, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:     st,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentHTTP),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
		}),
		traceMiddleware: trace.NewMiddleware(logger, trace.ExtractClientIP),
		appMetrics:      &appMetrics{startTime: time.Now()},
	}

	// REST API. {$} keeps the banner off every other /api path.
	mux.HandleFunc("GET /api/{$}", s.handleBanner)
	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("GET /api/accounts/{user}", s.handleGetAccount)
	mux.HandleFunc("DELETE /api/accounts/{user}", s.handleDeleteAccount)
	mux.HandleFunc("POST /api/accounts/{user}/transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /api/accounts/{user}/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	// Static assets from the embedded FS, with a small client-side cache.
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Error("Failed to mount embedded static FS", log.FieldError, err)
	}

	// The SPA router owns every remaining path (/, /dashboard, /login, ...):
	// each must serve the shell so history navigation survives a reload.
	if index, err := appweb.StaticFS.ReadFile("static/index.html"); err == nil {
		s.index = index
	} else {
		s.logger.Error("Failed to load SPA shell", log.FieldError, err)
	}
	mux.HandleFunc("/", s.handleSPA)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limited := s.rateLimiter.Middleware(trace.ExtractClientIP, http.MethodPost, http.MethodDelete)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.traceMiddleware.Middleware(headers.Middleware(limited(mux))),
	}

	return s
}

// Shutdown stops the helper goroutines exactly once, then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// handleSPA serves the embedded frontend shell for client-routed paths.
func (s *Server) handleSPA(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.index == nil {
		s.logger.ErrorContext(r.Context(), "SPA shell not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "frontend not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(s.index)
}

func (s *Server) countAccountCreated() {
	atomic.AddInt64(&s.appMetrics.accountsCreated, 1)
}

func (s *Server) countAccountDeleted() {
	atomic.AddInt64(&s.appMetrics.accountsDeleted, 1)
}

func (s *Server) countTransactionRecorded() {
	atomic.AddInt64(&s.appMetrics.transactionsRecorded, 1)
}

func (s *Server) countTransactionDeleted() {
	atomic.AddInt64(&s.appMetrics.transactionsDeleted, 1)
}
