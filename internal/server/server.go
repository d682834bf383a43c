// Package server exposes the operational endpoints a running session daemon
// needs: liveness, version, and Prometheus metrics. It is not a user-facing
// surface.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dicemate/dicemate/internal/metrics"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Server wraps the operational HTTP listener.
type Server struct {
	httpServer *http.Server
}

// New builds the server on the given port.
func New(port int) *Server {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)

	r.Get("/healthz", handleHealthz)
	r.Get("/version", handleVersion)
	r.Handle("/metrics", promhttp.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until Shutdown or a listener error.
func (s *Server) Start() error {
	slog.Info("operational server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func handleVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"version": Version})
}
