// Package db registers the path engine with SQLite and wraps a connection
// pool that exposes it.
package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/asg017/sqlite-path/internal/config"
)

// DriverName is a database/sql driver that registers the path functions on
// every new connection.
const DriverName = "sqlite3_path"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{ConnectHook: Register})
}

// Register installs the scalar path functions, and path_segments when the
// build supports virtual tables, on conn.
func Register(conn *sqlite3.SQLiteConn) error {
	if err := registerFunctions(conn); err != nil {
		return err
	}
	if err := registerSegments(conn); err != nil {
		return fmt.Errorf("failed to register %s: %w", SegmentsModule, err)
	}
	return nil
}

// connector opens connections through a driver built for one DB, so that
// configured extensions do not leak into the global driver.
type connector struct {
	dsn    string
	driver *sqlite3.SQLiteDriver
}

func (c connector) Connect(context.Context) (driver.Conn, error) {
	return c.driver.Open(c.dsn)
}

func (c connector) Driver() driver.Driver {
	return c.driver
}

// Option configures Open.
type Option func(*DB)

// WithLogger sets the logger used for connection and call tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(db *DB) {
		if logger != nil {
			db.logger = logger
		}
	}
}

// DB is a pool of SQLite connections with the path engine registered.
type DB struct {
	conn   *sqlx.DB
	path   string
	logger *slog.Logger
}

// SegmentRow is one row of path_segments.
type SegmentRow struct {
	RowID   int64  `db:"rowid" json:"rowid"`
	Segment string `db:"segment" json:"segment"`
	Type    string `db:"type" json:"type"`
}

// ResultSet is the materialised output of an ad hoc query.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// HostInfo describes the SQLite library behind a DB.
type HostInfo struct {
	SQLiteVersion string   `json:"sqlite_version"`
	VecVersion    string   `json:"vec_version"`
	Functions     []string `json:"functions"`
	Modules       []string `json:"modules"`
}

// Open checks the platform, then opens cfg.Path with the path engine
// registered on every connection.
func Open(cfg config.DatabaseConfig, opts ...Option) (*DB, error) {
	if err := CheckPlatform(runtime.GOOS, runtime.GOARCH); err != nil {
		return nil, err
	}

	sqlite_vec.Auto()

	db := &DB{path: cfg.Path, logger: slog.Default()}
	if cfg.InMemory() {
		db.path = config.MemoryPath
	}
	for _, opt := range opts {
		opt(db)
	}

	drv := &sqlite3.SQLiteDriver{
		Extensions:  cfg.Extensions,
		ConnectHook: Register,
	}
	conn := sqlx.NewDb(sql.OpenDB(connector{dsn: db.path, driver: drv}), "sqlite3")
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.conn = conn

	db.logger.Debug("database opened", "path", db.path, "extensions", len(cfg.Extensions), "segments", segmentsAvailable)
	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Path() string {
	return db.path
}

func (db *DB) Conn() *sqlx.DB {
	return db.conn
}

func (db *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, query, args...)
}

func (db *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, query, args...)
}

func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, query, args...)
}

// Call evaluates one registered scalar function through SQLite. Arguments
// are checked before the query runs so that type errors come back as
// *ArgumentError rather than SQLite error text. A nil result is SQL NULL.
func (db *DB) Call(ctx context.Context, name string, args ...any) (any, error) {
	fn, ok := lookupFunction(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	args, err := fn.coerce(args)
	if err != nil {
		return nil, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
	query := fmt.Sprintf("SELECT %s(%s)", fn.name, placeholders)

	var result any
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&result); err != nil {
		return nil, fmt.Errorf("%s failed: %w", fn.name, err)
	}
	if b, ok := result.([]byte); ok {
		result = string(b)
	}

	db.logger.Debug("call", "function", fn.name, "args", len(args), "result", result)
	return result, nil
}

// Segments lists path through the path_segments table-valued function.
func (db *DB) Segments(ctx context.Context, path string) ([]SegmentRow, error) {
	if !segmentsAvailable {
		return nil, ErrSegmentsUnavailable
	}
	rows := []SegmentRow{}
	err := db.conn.SelectContext(ctx, &rows,
		"SELECT rowid, segment, type FROM "+SegmentsModule+"(?)", path)
	if err != nil {
		return nil, fmt.Errorf("failed to list segments: %w", err)
	}
	return rows, nil
}

// Run executes an arbitrary statement and collects every row. BLOB values
// are returned as strings.
func (db *DB) Run(ctx context.Context, query string, args ...any) (*ResultSet, error) {
	rows, err := db.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	rs := &ResultSet{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rs, nil
}

// HostInfo reports the versions of SQLite and sqlite-vec on this pool.
func (db *DB) HostInfo(ctx context.Context) (*HostInfo, error) {
	info := &HostInfo{Functions: Functions(), Modules: Modules()}
	err := db.conn.QueryRowContext(ctx, "SELECT sqlite_version(), vec_version()").
		Scan(&info.SQLiteVersion, &info.VecVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to read host versions: %w", err)
	}
	return info, nil
}

// IsArgumentError reports whether err carries an argument type mismatch.
func IsArgumentError(err error) bool {
	return errors.Is(err, ErrArgumentType)
}
