//go:build sqlite_vtable

package db

import (
	"math"

	"github.com/mattn/go-sqlite3"

	"github.com/asg017/sqlite-path/internal/pathutil"
)

const segmentsAvailable = true

const (
	segmentsColumnPath = iota
	segmentsColumnType
	segmentsColumnSegment
)

const (
	segmentsPlanNone = iota
	segmentsPlanPath
)

type segmentsModule struct{}

// EponymousOnlyModule keeps path_segments usable without CREATE VIRTUAL TABLE.
func (segmentsModule) EponymousOnlyModule() {}

func (m segmentsModule) Create(c *sqlite3.SQLiteConn, args []string) (sqlite3.VTab, error) {
	return m.Connect(c, args)
}

func (segmentsModule) Connect(c *sqlite3.SQLiteConn, args []string) (sqlite3.VTab, error) {
	if err := c.DeclareVTab("CREATE TABLE x(path HIDDEN, type, segment)"); err != nil {
		return nil, err
	}
	return &segmentsTable{}, nil
}

func (segmentsModule) DestroyModule() {}

type segmentsTable struct{}

// BestIndex requires an equality constraint on the hidden path column.
// When one exists but is not usable in this plan, the plan is priced out so
// the planner picks another join order.
func (t *segmentsTable) BestIndex(constraints []sqlite3.InfoConstraint, _ []sqlite3.InfoOrderBy) (*sqlite3.IndexResult, error) {
	used := make([]bool, len(constraints))
	seen := false
	for i, c := range constraints {
		if c.Column != segmentsColumnPath {
			continue
		}
		seen = true
		if c.Usable && c.Op == sqlite3.OpEQ {
			used[i] = true
			return &sqlite3.IndexResult{
				Used:          used,
				IdxNum:        segmentsPlanPath,
				EstimatedCost: 100000,
			}, nil
		}
	}
	if !seen {
		return nil, errPathRequired
	}
	return &sqlite3.IndexResult{
		Used:          used,
		IdxNum:        segmentsPlanNone,
		EstimatedCost: math.MaxFloat64,
	}, nil
}

func (t *segmentsTable) Open() (sqlite3.VTabCursor, error) {
	return &segmentsCursor{}, nil
}

func (t *segmentsTable) Disconnect() error { return nil }
func (t *segmentsTable) Destroy() error    { return nil }

// segmentsCursor owns the segments of one Filter call.
type segmentsCursor struct {
	segments []pathutil.Segment
	pos      int
}

func (c *segmentsCursor) Filter(idxNum int, _ string, vals []any) error {
	c.segments = nil
	c.pos = 0
	if idxNum != segmentsPlanPath || len(vals) == 0 {
		return nil
	}
	path, ok, err := textArg(SegmentsModule, 1, vals[0])
	if err != nil || !ok {
		return err
	}
	c.segments = pathutil.Split(path).Segments
	return nil
}

func (c *segmentsCursor) Next() error {
	c.pos++
	return nil
}

func (c *segmentsCursor) EOF() bool {
	return c.pos >= len(c.segments)
}

func (c *segmentsCursor) Column(ctx *sqlite3.SQLiteContext, col int) error {
	seg := c.segments[c.pos]
	switch col {
	case segmentsColumnPath:
		ctx.ResultNull()
	case segmentsColumnType:
		ctx.ResultText(seg.Kind.String())
	case segmentsColumnSegment:
		ctx.ResultText(seg.Text)
	}
	return nil
}

func (c *segmentsCursor) Rowid() (int64, error) {
	return int64(c.pos), nil
}

func (c *segmentsCursor) Close() error {
	c.segments = nil
	return nil
}

func registerSegments(conn *sqlite3.SQLiteConn) error {
	return conn.CreateModule(SegmentsModule, segmentsModule{})
}
