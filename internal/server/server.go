// Package server runs the pathq HTTP API until its context is cancelled or
// a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/asg017/sqlite-path/internal/api"
	"github.com/asg017/sqlite-path/internal/config"
)

// ShutdownTimeout bounds how long in-flight requests may take once shutdown starts.
const ShutdownTimeout = 5 * time.Second

// Server serves the API router for one evaluator.
type Server struct {
	cfg    config.ServerConfig
	router *api.Router
	logger *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}
}

// New creates a Server. A nil logger uses slog.Default().
func New(cfg config.ServerConfig, eval api.Evaluator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:    cfg,
		router: api.NewRouter(eval, cfg, logger),
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address, or "" before Run has started listening.
// With port 0 this is where the system-assigned port shows up.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run listens on the configured address and blocks until ctx is done, a
// shutdown signal is received, or the server fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address(), err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	close(s.ready)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, ShutdownSignals()...)
	defer signal.Stop(sigCh)

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, shutting down")
	case sig := <-sigCh:
		s.logger.Info("received signal, shutting down", "signal", sig)
	case err := <-serverErrCh:
		if err != nil {
			s.logger.Error("server error", "error", err)
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("server shutdown error", "error", err)
	}
	return runErr
}
