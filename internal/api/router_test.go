package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asg017/sqlite-path/internal/config"
	"github.com/asg017/sqlite-path/internal/db"
)

func TestRouter_UnknownRoute(t *testing.T) {
	rec := doRequest(t, newTestRouter(&fakeEvaluator{}), http.MethodGet, "/search", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ZeroTimeoutFallsBack(t *testing.T) {
	cfg := config.Default().Server
	cfg.RequestTimeoutMs = 0

	r := NewRouter(&fakeEvaluator{}, cfg, nil)
	rec := doRequest(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestRouter_Engine runs requests through the real SQLite engine.
func TestRouter_Engine(t *testing.T) {
	database, err := db.Open(config.DatabaseConfig{Path: config.MemoryPath})
	require.NoError(t, err)
	defer database.Close()

	r := newTestRouter(database)

	tests := []struct {
		req      CallRequest
		expected any
	}{
		{CallRequest{Function: "path_normalize", Args: []any{"~/../a/b/./c/../ayoo"}}, "a/b/ayoo"},
		{CallRequest{Function: "path_intersection", Args: []any{"/this/is/a/test", "/this/is/a/ayoo/what"}}, "/this/is/a"},
		{CallRequest{Function: "path_segment_at", Args: []any{"/home/oppenheimer/README.md", -1}}, "README.md"},
		{CallRequest{Function: "path_absolute", Args: []any{"/a"}}, float64(1)},
		{CallRequest{Function: "path_extension", Args: []any{"abc"}}, nil},
		{CallRequest{Function: "path_join", Args: []any{"aa", "bbb", "cccc"}}, "aa/bbb/cccc"},
	}

	for _, tt := range tests {
		t.Run(tt.req.Function, func(t *testing.T) {
			rec := doRequest(t, r, http.MethodPost, "/call", tt.req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp CallResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.expected, resp.Result)
		})
	}

	rec := doRequest(t, r, http.MethodPost, "/call", CallRequest{Function: "path_basename", Args: []any{true}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ARGUMENT", decodeError(t, rec).Code)
}

func TestRouter_EngineNullArguments(t *testing.T) {
	database, err := db.Open(config.DatabaseConfig{Path: config.MemoryPath})
	require.NoError(t, err)
	defer database.Close()

	r := newTestRouter(database)

	tests := []struct {
		body     string
		expected any
	}{
		{`{"function":"path_relative","args":[null]}`, nil},
		{`{"function":"path_normalize","args":[null]}`, nil},
		{`{"function":"path_absolute","args":[null]}`, float64(0)},
		{`{"function":"path_join","args":[null,"b"]}`, nil},
		{`{"function":"path_segment_at","args":["a/b",null]}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			rec := doRequest(t, r, http.MethodPost, "/call", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp CallResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.expected, resp.Result)
		})
	}
}
