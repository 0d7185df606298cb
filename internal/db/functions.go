package db

import (
	"fmt"
	"math"
	"sort"

	"github.com/mattn/go-sqlite3"

	"github.com/asg017/sqlite-path/internal/pathutil"
	"github.com/asg017/sqlite-path/internal/version"
)

// SegmentsModule is the name of the table-valued segment listing.
const SegmentsModule = "path_segments"

type argKind int

const (
	argText argKind = iota
	argInteger
)

func (k argKind) String() string {
	if k == argInteger {
		return "INTEGER"
	}
	return "TEXT"
}

// function describes one scalar SQL function. When variadic is set the last
// entry of args may repeat.
type function struct {
	name     string
	args     []argKind
	variadic bool
	impl     any
}

var scalarFunctions = []function{
	{name: "path_version", impl: pathVersion},
	{name: "path_debug", impl: pathDebug},
	{name: "path_absolute", args: []argKind{argText}, impl: pathAbsolute},
	{name: "path_relative", args: []argKind{argText}, impl: pathRelative},
	{name: "path_root", args: []argKind{argText}, impl: pathRoot},
	{name: "path_basename", args: []argKind{argText}, impl: pathBasename},
	{name: "path_dirname", args: []argKind{argText}, impl: pathDirname},
	{name: "path_extension", args: []argKind{argText}, impl: pathExtension},
	{name: "path_normalize", args: []argKind{argText}, impl: pathNormalize},
	{name: "path_join", args: []argKind{argText, argText}, variadic: true, impl: pathJoin},
	{name: "path_intersection", args: []argKind{argText, argText}, impl: pathIntersection},
	{name: "path_segment_at", args: []argKind{argText, argInteger}, impl: pathSegmentAt},
}

// Functions returns the names of the scalar functions registered on every
// connection, sorted.
func Functions() []string {
	names := make([]string, 0, len(scalarFunctions))
	for _, fn := range scalarFunctions {
		names = append(names, fn.name)
	}
	sort.Strings(names)
	return names
}

// Modules returns the names of the virtual table modules in this build.
func Modules() []string {
	if !segmentsAvailable {
		return nil
	}
	return []string{SegmentsModule}
}

// Signature returns the SQL parameter types of a registered function, e.g.
// ["TEXT", "INTEGER"]. variadic reports that the last type may repeat.
func Signature(name string) (params []string, variadic bool, ok bool) {
	fn, ok := lookupFunction(name)
	if !ok {
		return nil, false, false
	}
	params = make([]string, len(fn.args))
	for i, kind := range fn.args {
		params[i] = kind.String()
	}
	return params, fn.variadic, true
}

func lookupFunction(name string) (function, bool) {
	for _, fn := range scalarFunctions {
		if fn.name == name {
			return fn, true
		}
	}
	return function{}, false
}

// coerce checks args against the declared kinds and converts Go values that
// do not come from SQLite (int, JSON float64) to what the function expects.
func (fn function) coerce(args []any) ([]any, error) {
	if len(args) < len(fn.args) || (!fn.variadic && len(args) > len(fn.args)) {
		if fn.name == "path_join" {
			return nil, ErrJoinArity
		}
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, fn.name, len(fn.args), len(args))
	}

	out := make([]any, len(args))
	for i, arg := range args {
		kind := fn.args[min(i, len(fn.args)-1)]
		switch kind {
		case argText:
			if _, _, err := textArg(fn.name, i+1, arg); err != nil {
				return nil, err
			}
			out[i] = arg
		case argInteger:
			v, err := integerArg(fn.name, i+1, arg)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
	}
	return out, nil
}

func registerFunctions(conn *sqlite3.SQLiteConn) error {
	for _, fn := range scalarFunctions {
		if err := conn.RegisterFunc(fn.name, fn.impl, true); err != nil {
			return fmt.Errorf("failed to register %s: %w", fn.name, err)
		}
	}
	return nil
}

func sqlTypeName(v any) string {
	if isNull(v) {
		return "NULL"
	}
	switch v.(type) {
	case int64, int, int32:
		return "INTEGER"
	case float64, float32:
		return "REAL"
	case string:
		return "TEXT"
	case []byte:
		return "BLOB"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// isNull reports whether v is SQL NULL. go-sqlite3 passes NULL to an any
// parameter as a nil []byte; an empty BLOB arrives as a non-nil one.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	b, ok := v.([]byte)
	return ok && b == nil
}

// textArg reads a TEXT argument. ok is false for NULL. BLOBs are read as
// text, the way sqlite3_value_text does.
func textArg(fn string, pos int, v any) (s string, ok bool, err error) {
	if isNull(v) {
		return "", false, nil
	}
	switch x := v.(type) {
	case string:
		return x, true, nil
	case []byte:
		return string(x), true, nil
	default:
		return "", false, &ArgumentError{Function: fn, Position: pos, Want: argText.String(), Got: sqlTypeName(v)}
	}
}

// integerArg reads an INTEGER argument, returning nil for NULL.
func integerArg(fn string, pos int, v any) (any, error) {
	if isNull(v) {
		return nil, nil
	}
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return int64(x), nil
		}
	}
	return nil, &ArgumentError{Function: fn, Position: pos, Want: argInteger.String(), Got: sqlTypeName(v)}
}

func nullable(s string, ok bool) any {
	if !ok {
		return nil
	}
	return s
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// pathVersion returns the engine's version tag.
func pathVersion() string {
	return version.Tag()
}

// LibraryVersion returns the version of the linked SQLite library.
func LibraryVersion() string {
	libVersion, _, _ := sqlite3.Version()
	return libVersion
}

// pathDebug returns the version, date and source lines followed by the
// SQLite library version.
func pathDebug() string {
	return version.Debug() + "\nSQLite version: " + LibraryVersion()
}

// pathAbsolute returns 1 for an absolute path. NULL counts as not absolute.
func pathAbsolute(v any) (int64, error) {
	p, ok, err := textArg("path_absolute", 1, v)
	if err != nil || !ok {
		return 0, err
	}
	return boolInt(pathutil.IsAbsolute(p)), nil
}

// pathRelative returns 1 for a relative path and NULL for NULL.
func pathRelative(v any) (any, error) {
	p, ok, err := textArg("path_relative", 1, v)
	if err != nil || !ok {
		return nil, err
	}
	return boolInt(pathutil.IsRelative(p)), nil
}

// pathRoot returns "/" for an absolute path and NULL otherwise.
func pathRoot(v any) (any, error) {
	p, ok, err := textArg("path_root", 1, v)
	if err != nil || !ok {
		return nil, err
	}
	return nullable(pathutil.Root(p)), nil
}

func pathBasename(v any) (any, error) {
	p, ok, err := textArg("path_basename", 1, v)
	if err != nil || !ok {
		return nil, err
	}
	return nullable(pathutil.Basename(p)), nil
}

func pathDirname(v any) (any, error) {
	p, ok, err := textArg("path_dirname", 1, v)
	if err != nil || !ok {
		return nil, err
	}
	return nullable(pathutil.Dirname(p)), nil
}

func pathExtension(v any) (any, error) {
	p, ok, err := textArg("path_extension", 1, v)
	if err != nil || !ok {
		return nil, err
	}
	return nullable(pathutil.Extension(p)), nil
}

// pathNormalize always returns text for a non-NULL path, possibly empty.
func pathNormalize(v any) (any, error) {
	p, ok, err := textArg("path_normalize", 1, v)
	if err != nil || !ok {
		return nil, err
	}
	return pathutil.Normalize(p), nil
}

// pathJoin folds left over every argument. Any NULL argument yields NULL.
func pathJoin(args ...any) (any, error) {
	if len(args) < 2 {
		return nil, ErrJoinArity
	}
	parts := make([]string, len(args))
	null := false
	for i, arg := range args {
		p, ok, err := textArg("path_join", i+1, arg)
		if err != nil {
			return nil, err
		}
		if !ok {
			null = true
		}
		parts[i] = p
	}
	if null {
		return nil, nil
	}
	return pathutil.JoinAll(parts...), nil
}

// pathIntersection is NULL when the paths share nothing.
func pathIntersection(a, b any) (any, error) {
	pa, okA, err := textArg("path_intersection", 1, a)
	if err != nil {
		return nil, err
	}
	pb, okB, err := textArg("path_intersection", 2, b)
	if err != nil {
		return nil, err
	}
	if !okA || !okB {
		return nil, nil
	}
	common := pathutil.Intersection(pa, pb)
	return nullable(common, common != ""), nil
}

// pathSegmentAt returns NULL for a NULL argument or an index out of range.
func pathSegmentAt(v, at any) (any, error) {
	p, ok, err := textArg("path_segment_at", 1, v)
	if err != nil {
		return nil, err
	}
	idx, err := integerArg("path_segment_at", 2, at)
	if err != nil {
		return nil, err
	}
	if !ok || idx == nil {
		return nil, nil
	}
	n := idx.(int64)
	if n > math.MaxInt32 || n < math.MinInt32 {
		return nil, nil
	}
	return nullable(pathutil.SegmentAt(p, int(n))), nil
}
