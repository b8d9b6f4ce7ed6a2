// Package http exposes the service's HTTP surface: health, readiness,
// metrics, the current snapshot, and an on-demand refresh trigger.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heatwatch/wetbulb-advisory/internal/domain"
	"github.com/heatwatch/wetbulb-advisory/internal/pipeline"
)

// refreshTimeout bounds an on-demand refresh independently of the caller's
// connection.
const refreshTimeout = 60 * time.Second

// SnapshotSource provides read access to the published snapshot.
type SnapshotSource interface {
	Latest() (domain.AreaSnapshot, bool)
	CheckReadiness(ctx context.Context) error
}

// Refresher runs one refresh cycle on demand.
type Refresher interface {
	RunCycle(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and snapshot HTTP endpoints.
type Server struct {
	httpServer *http.Server
	snapshots  SnapshotSource
	refresher  Refresher
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// /v1/snapshot, and /v1/refresh routes.
func NewServer(addr string, snapshots SnapshotSource, refresher Refresher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: refreshTimeout + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		snapshots: snapshots,
		refresher: refresher,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/snapshot", s.handleSnapshot)
	mux.HandleFunc("POST /v1/refresh", s.handleRefresh)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.snapshots.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleSnapshot serves the last published snapshot. Never blocks on a cycle;
// before the first successful cycle it reports 503.
func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshots.Latest()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "no snapshot available yet",
		})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleRefresh runs one cycle synchronously on a server-side timeout,
// detached from the caller's connection so a dropped client cannot abandon
// the fetches mid-cycle.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), refreshTimeout)
	defer cancel()

	err := s.refresher.RunCycle(ctx)
	switch {
	case errors.Is(err, pipeline.ErrCycleInFlight):
		writeJSON(w, http.StatusConflict, map[string]string{
			"status": "refresh already in flight",
		})
	case err != nil:
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"status": "refresh failed",
			"error":  err.Error(),
		})
	default:
		snap, _ := s.snapshots.Latest()
		writeJSON(w, http.StatusOK, snap)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
