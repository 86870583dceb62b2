// Package server runs the keep-alive HTTP server: a landing page, liveness and status
// endpoints, dependency health checks and prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"community-bot/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

const (
	PathIndex        = "/"
	PathHealth       = "/health"
	PathStatus       = "/status"
	PathHealthChecks = "/health/checks"
	PathMetrics      = "/metrics"
)

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Community Bot</title>
</head>
<body>
<h1>Community Bot</h1>
<p>The bot is online. See <a href="/status">/status</a> for details.</p>
</body>
</html>
`

// Options configures a Server. Session may be nil, in which case the gateway check and the
// guild count are skipped.
type Options struct {
	Port      int
	Logger    *zap.Logger
	Stores    *database.Stores
	Session   *discordgo.Session
	StartedAt time.Time
}

type Server struct {
	logger    *zap.Logger
	router    *mux.Router
	srv       *http.Server
	stores    *database.Stores
	session   *discordgo.Session
	startedAt time.Time
	now       func() time.Time
}

func New(opts Options) *Server {
	if opts.StartedAt.IsZero() {
		opts.StartedAt = time.Now()
	}
	s := &Server{
		logger:    opts.Logger,
		router:    mux.NewRouter(),
		stores:    opts.Stores,
		session:   opts.Session,
		startedAt: opts.StartedAt,
		now:       time.Now,
	}
	s.setupRoutes()
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(securityHeaders)

	s.router.HandleFunc(PathIndex, s.middlewareHttp(s.index)).Methods(http.MethodGet)
	s.router.HandleFunc(PathHealth, s.middlewareHttp(s.health)).Methods(http.MethodGet)
	s.router.HandleFunc(PathStatus, s.middlewareHttp(s.status)).Methods(http.MethodGet)
	s.router.HandleFunc(PathHealthChecks, s.middlewareHttp(s.healthCheck())).Methods(http.MethodGet)
	s.router.Handle(PathMetrics, promhttp.Handler()).Methods(http.MethodGet)

	// mux skips middleware for unmatched requests
	s.router.NotFoundHandler = securityHeaders(notFoundHandler(s.logger))
	s.router.MethodNotAllowedHandler = securityHeaders(methodNotAllowedHandler(s.logger))
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves in the background until Shutdown is called.
func (s *Server) Start() {
	go func() {
		s.logger.Info("starting http server", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server stopped", zap.Error(err))
			s.logger.Warn("health and metrics endpoints will not be available")
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexPage))
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type memoryStats struct {
	Alloc     uint64 `json:"alloc"`
	Sys       uint64 `json:"sys"`
	HeapAlloc uint64 `json:"heap_alloc"`
	NumGC     uint32 `json:"num_gc"`
}

type hostStats struct {
	MemoryTotal uint64  `json:"memory_total"`
	MemoryUsed  uint64  `json:"memory_used"`
	MemoryUsage float64 `json:"memory_used_percent"`
	Uptime      uint64  `json:"uptime"`
}

// Status is the body of GET /status.
type Status struct {
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	Timestamp  time.Time   `json:"timestamp"`
	Uptime     float64     `json:"uptime"`
	Memory     memoryStats `json:"memory"`
	Host       *hostStats  `json:"host,omitempty"`
	GoVersion  string      `json:"go_version"`
	Platform   string      `json:"platform"`
	Goroutines int         `json:"goroutines"`
	Backend    string      `json:"backend"`
	Degraded   bool        `json:"degraded"`
	Guilds     int         `json:"guilds"`
}

func (s *Server) buildStatus(ctx context.Context) Status {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	now := s.now()
	st := Status{
		Status:    "online",
		Message:   "Discord bot is running",
		Timestamp: now.UTC(),
		Uptime:    now.Sub(s.startedAt).Seconds(),
		Memory: memoryStats{
			Alloc:     ms.Alloc,
			Sys:       ms.Sys,
			HeapAlloc: ms.HeapAlloc,
			NumGC:     ms.NumGC,
		},
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		Goroutines: runtime.NumGoroutine(),
		Host:       collectHostStats(ctx),
	}
	if s.stores != nil {
		st.Backend = s.stores.Backend()
		st.Degraded = s.stores.Degraded
	}
	if s.session != nil && s.session.State != nil {
		s.session.State.RLock()
		st.Guilds = len(s.session.State.Guilds)
		s.session.State.RUnlock()
	}
	return st
}

// collectHostStats reads host memory through gopsutil. It returns nil when the host does not
// expose memory figures.
func collectHostStats(ctx context.Context) *hostStats {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil
	}
	hs := &hostStats{
		MemoryTotal: vm.Total,
		MemoryUsed:  vm.Used,
		MemoryUsage: vm.UsedPercent,
	}
	if up, err := host.UptimeWithContext(ctx); err == nil {
		hs.Uptime = up
	}
	return hs
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(s.buildStatus(r.Context())); err != nil {
		s.logger.Error("error encoding response", zap.Error(err))
	}
}
