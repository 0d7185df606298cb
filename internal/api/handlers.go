package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/asg017/sqlite-path/internal/db"
	"github.com/asg017/sqlite-path/internal/version"
)

// Evaluator runs path functions against the host engine. *db.DB satisfies it.
type Evaluator interface {
	Call(ctx context.Context, name string, args ...any) (any, error)
	Segments(ctx context.Context, path string) ([]db.SegmentRow, error)
	HostInfo(ctx context.Context) (*db.HostInfo, error)
}

// SegmentsCacheSize bounds the number of paths whose segment listings are
// kept by a Handler.
const SegmentsCacheSize = 1024

// Handler handles HTTP requests for the pathq API
type Handler struct {
	eval     Evaluator
	logger   *slog.Logger
	segments *lru.Cache[string, []db.SegmentRow]
}

// NewHandler creates a new Handler instance
func NewHandler(eval Evaluator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, []db.SegmentRow](SegmentsCacheSize)
	return &Handler{
		eval:     eval,
		logger:   logger,
		segments: cache,
	}
}

// Health handles GET /health requests
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Version handles GET /version requests
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	debug, err := h.eval.Call(r.Context(), "path_debug")
	if err != nil {
		h.writeEvalError(w, err)
		return
	}
	host, err := h.eval.HostInfo(r.Context())
	if err != nil {
		h.writeEvalError(w, err)
		return
	}
	text, _ := debug.(string)
	writeJSON(w, http.StatusOK, VersionResponse{
		Version: version.Tag(),
		Debug:   text,
		Host:    host,
	})
}

// Call handles POST /call requests
func (h *Handler) Call(w http.ResponseWriter, r *http.Request) {
	var req CallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, ErrInvalidJSON.WithDetails(err.Error()))
		return
	}
	if req.Function == "" {
		WriteBadRequest(w, ErrInvalidJSON.WithDetails("function is required"))
		return
	}

	result, err := h.eval.Call(r.Context(), req.Function, req.Args...)
	if err != nil {
		h.writeEvalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CallResponse{
		Function: req.Function,
		Result:   result,
	})
}

// Segments handles GET /segments?path= requests
func (h *Handler) Segments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("path") {
		WriteBadRequest(w, ErrPathRequired)
		return
	}
	path := query.Get("path")

	rows, ok := h.segments.Get(path)
	if !ok {
		var err error
		rows, err = h.eval.Segments(r.Context(), path)
		if err != nil {
			h.writeEvalError(w, err)
			return
		}
		h.segments.Add(path, rows)
	}
	writeJSON(w, http.StatusOK, SegmentsResponse{
		Path:     path,
		Segments: rows,
	})
}

// writeEvalError maps engine errors onto the APIError catalog.
func (h *Handler) writeEvalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrUnknownFunction):
		WriteNotFound(w, ErrUnknownFunction.WithDetails(err.Error()))
	case errors.Is(err, db.ErrArgumentType),
		errors.Is(err, db.ErrArity),
		errors.Is(err, db.ErrJoinArity):
		WriteBadRequest(w, ErrInvalidArgument.WithDetails(err.Error()))
	case errors.Is(err, db.ErrSegmentsUnavailable):
		WriteError(w, http.StatusNotImplemented, ErrSegmentsUnavailable)
	default:
		h.logger.Error("evaluation failed", "error", err)
		WriteInternalError(w, ErrQueryFailed.WithDetails(err.Error()))
	}
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
