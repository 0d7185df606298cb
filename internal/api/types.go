package api

import (
	"time"

	"github.com/asg017/sqlite-path/internal/db"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// VersionResponse reports build metadata and the host engine
type VersionResponse struct {
	Version string       `json:"version"`
	Debug   string       `json:"debug"`
	Host    *db.HostInfo `json:"host,omitempty"`
}

// CallRequest names one scalar function and its arguments. Numbers arrive
// as JSON floats and are narrowed to integers where the function needs one.
type CallRequest struct {
	Function string `json:"function"`
	Args     []any  `json:"args"`
}

// CallResponse carries the function result; null when the result is
// defined-empty.
type CallResponse struct {
	Function string `json:"function"`
	Result   any    `json:"result"`
}

// SegmentsResponse lists the segments of one path
type SegmentsResponse struct {
	Path     string          `json:"path"`
	Segments []db.SegmentRow `json:"segments"`
}
