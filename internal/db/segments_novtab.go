//go:build !sqlite_vtable

package db

import "github.com/mattn/go-sqlite3"

const segmentsAvailable = false

func registerSegments(*sqlite3.SQLiteConn) error { return nil }
