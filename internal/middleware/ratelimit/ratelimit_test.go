package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, perMinute int) *Limiter {
	t.Helper()
	rl := NewLimiter(Config{RequestsPerMinute: perMinute})
	t.Cleanup(rl.Stop)
	return rl
}

func TestAllowUnderAndOverLimit(t *testing.T) {
	rl := newTestLimiter(t, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("fourth request should be rejected")
	}

	// Other clients keep their own window.
	if !rl.Allow("10.0.0.2") {
		t.Fatal("different client should be allowed")
	}

	metrics := rl.GetMetrics()
	if metrics.TotalHits != 1 {
		t.Fatalf("TotalHits = %d, want 1", metrics.TotalHits)
	}
	if metrics.ClientCount != 2 {
		t.Fatalf("ClientCount = %d, want 2", metrics.ClientCount)
	}
}

func TestWindowResetsAfterInactivity(t *testing.T) {
	rl := newTestLimiter(t, 1)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("second request should be rejected")
	}

	rl.mu.Lock()
	rl.clients["10.0.0.1"].lastRequest = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	if !rl.Allow("10.0.0.1") {
		t.Fatal("request after window expiry should be allowed")
	}
}

func TestCleanupDropsStaleClients(t *testing.T) {
	rl := newTestLimiter(t, 10)

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")

	rl.mu.Lock()
	rl.clients["10.0.0.1"].lastRequest = time.Now().Add(-20 * time.Minute)
	rl.mu.Unlock()

	rl.cleanupStaleEntries()

	if got := rl.ActiveClients(); got != 1 {
		t.Fatalf("ActiveClients = %d, want 1", got)
	}
}

func TestMiddlewareLimitsOnlyListedMethods(t *testing.T) {
	rl := newTestLimiter(t, 1)

	handler := rl.Middleware(nil, http.MethodPost)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	post := func() int {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/x", nil))
		return rr.Code
	}

	if code := post(); code != http.StatusOK {
		t.Fatalf("first POST = %d", code)
	}
	if code := post(); code != http.StatusTooManyRequests {
		t.Fatalf("second POST = %d, want 429", code)
	}

	// GET is not on the limited list and always passes.
	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %d = %d", i, rr.Code)
		}
	}
}
