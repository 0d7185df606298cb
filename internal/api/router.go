// Package api serves the path functions over HTTP for `pathq serve`.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/asg017/sqlite-path/internal/config"
)

// Router wraps a chi router with handler configuration
type Router struct {
	chi     chi.Router
	handler *Handler
	logger  *slog.Logger
}

// NewRouter creates a new Router with the given dependencies
func NewRouter(eval Evaluator, cfg config.ServerConfig, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	handler := NewHandler(eval, logger)

	timeout := cfg.RequestTimeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger.WithGroup("http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	// Register routes
	r.Get("/health", handler.Health)
	r.Get("/version", handler.Version)
	r.Post("/call", handler.Call)
	r.Get("/segments", handler.Segments)

	return &Router{
		chi:     r,
		handler: handler,
		logger:  logger,
	}
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.chi.ServeHTTP(w, req)
}

// requestLogger logs one line per request, at warn for client errors and
// error for server errors.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"latency", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
