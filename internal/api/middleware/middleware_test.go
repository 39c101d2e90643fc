package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type observed struct {
	method, path string
	status       int
}

type fakeHTTPMetrics struct {
	mu       sync.Mutex
	requests []observed
	inFlight float64
}

func (m *fakeHTTPMetrics) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, observed{method, path, status})
}

func (m *fakeHTTPMetrics) InFlight(delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight += delta
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/branches/{branchId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/branches/42", nil))

	require.Len(t, m.requests, 1)
	assert.Equal(t, observed{http.MethodGet, "/api/v1/branches/{branchId}", http.StatusNotFound}, m.requests[0])
	assert.Zero(t, m.inFlight)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestRateLimiter_RejectsAfterBurst(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2, logger.NewNop())
	rl.now = func() time.Time { return now }

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/branches", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))

	// другой клиент не затронут
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))

	// токен восстанавливается через секунду
	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
}
