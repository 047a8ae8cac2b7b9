package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"mercator-hq/sweeper/pkg/config"
	"mercator-hq/sweeper/pkg/retention"
	"mercator-hq/sweeper/pkg/telemetry/metrics"
)

// DefaultShutdownTimeout bounds Shutdown when the caller's context has no
// deadline.
const DefaultShutdownTimeout = 5 * time.Second

// StatusProvider reports the scheduler status for /health.
type StatusProvider interface {
	Status() retention.Status
}

// Server serves metrics and health endpoints.
type Server struct {
	config     *config.MetricsConfig
	collector  *metrics.Collector
	status     StatusProvider
	version    string
	httpServer *http.Server
	listener   net.Listener
	logger     *slog.Logger

	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// New creates a server. status may be nil, in which case /health only
// reports liveness.
func New(cfg *config.MetricsConfig, collector *metrics.Collector, status StatusProvider, version string) *Server {
	return &Server{
		config:    cfg,
		collector: collector,
		status:    status,
		version:   version,
		logger:    slog.Default().With("component", "server"),
	}
}

// Start binds the listen address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("server is already running")
	}

	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.isRunning = true

	go func() {
		s.logger.Info("starting metrics server", "address", ln.Addr().String(), "path", s.metricsPath())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server failed", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if !s.isRunning {
			return
		}

		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, DefaultShutdownTimeout)
			defer cancel()
		}

		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}
		s.isRunning = false
		s.logger.Info("metrics server stopped")
	})

	return shutdownErr
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.collector != nil {
		mux.Handle(s.metricsPath(), s.collector.Handler())
	}
	mux.Handle("/health", s.healthHandler())
	mux.Handle("/version", versionHandler(s.version))
	return mux
}

func (s *Server) metricsPath() string {
	if s.config == nil || s.config.Path == "" {
		return config.DefaultPrometheusPath
	}
	return s.config.Path
}
