package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"community-bot/utils/database"
	"community-bot/utils/database/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, stores *database.Stores) *Server {
	t.Helper()
	return New(Options{
		Port:      0,
		Logger:    zap.NewNop(),
		Stores:    stores,
		StartedAt: time.Now().Add(-time.Minute),
	})
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := serve(newTestServer(t, memstore.New(nil)), http.MethodGet, PathHealth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
}

func TestIndex(t *testing.T) {
	w := serve(newTestServer(t, memstore.New(nil)), http.MethodGet, PathIndex)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Community Bot")
}

func TestStatus(t *testing.T) {
	stores := memstore.New(nil)
	stores.Degraded = true
	w := serve(newTestServer(t, stores), http.MethodGet, PathStatus)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var st Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, "online", st.Status)
	assert.Equal(t, "Discord bot is running", st.Message)
	assert.Equal(t, "memory", st.Backend)
	assert.True(t, st.Degraded)
	assert.GreaterOrEqual(t, st.Uptime, 59.0)
	assert.NotEmpty(t, st.GoVersion)
	assert.NotZero(t, st.Memory.Sys)
	require.NotNil(t, st.Host, "host memory comes from gopsutil")
	assert.NotZero(t, st.Host.MemoryTotal)
	assert.LessOrEqual(t, st.Host.MemoryUsed, st.Host.MemoryTotal)
	assert.Zero(t, st.Guilds)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, memstore.New(nil))

	tests := []struct {
		name   string
		method string
		path   string
		status int
		want   string
	}{
		{name: "unknown path", method: http.MethodGet, path: "/nope", status: http.StatusNotFound, want: "{\"message\":\"Not found\"}\n"},
		{name: "wrong method", method: http.MethodPost, path: PathHealth, status: http.StatusMethodNotAllowed, want: "{\"message\":\"Method not allowed\"}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(s, tt.method, tt.path)
			require.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestHealthChecks(t *testing.T) {
	w := serve(newTestServer(t, memstore.New(nil)), http.MethodGet, PathHealthChecks)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"up"`)

	down := database.NewStores("postgres", func(context.Context) error { return errors.New("connection refused") })
	w = serve(newTestServer(t, down), http.MethodGet, PathHealthChecks)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"down"`)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, memstore.New(nil))
	serve(s, http.MethodGet, PathHealth)
	w := serve(s, http.MethodGet, PathMetrics)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "community_bot_http_total_requests")
}

func TestPanicRecovery(t *testing.T) {
	s := newTestServer(t, memstore.New(nil))
	h := s.middlewareHttp(func(http.ResponseWriter, *http.Request) { panic("boom") })
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
