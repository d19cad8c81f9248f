// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package sqlexec is the database boundary of xsvload. It opens embedded
// SQLite files through modernc.org/sqlite and remote libSQL databases through
// libsql-client-go, and exposes a single pinned connection (Session) on which
// the importer drives its transaction with raw BEGIN/COMMIT/ROLLBACK
// statements, so the isolation keyword reaches the engine verbatim.
//
// Key features include:
//   - Session: execute, execute-many, begin/commit/rollback, close
//   - SchemaInspector: cached PRAGMA table_info lookups
//   - Query: ad-hoc reads normalized into a JSON-friendly Result
package sqlexec

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"seedfast/xsvload/internal/dsn"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Result represents a normalized SQL result for JSON marshaling.
type Result struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// MarshalJSON converts driver values into JSON-serializable ones.
func (r Result) MarshalJSON() ([]byte, error) {
	type Alias Result
	a := Alias(r)

	if len(r.Rows) > 0 {
		serializableRows := make([][]any, len(r.Rows))
		for i, row := range r.Rows {
			serializableRows[i] = make([]any, len(row))
			for j, val := range row {
				serializableRows[i][j] = normalizeValue(val)
			}
		}
		a.Rows = serializableRows
	}

	return json.Marshal(a)
}

func normalizeValue(val any) any {
	switch v := val.(type) {
	case []byte:
		if utf8.Valid(v) {
			return string(v)
		}
		return "\\x" + hex.EncodeToString(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}

// Executor owns the *sql.DB for one database target.
type Executor struct {
	// DB is the underlying handle; sessions pin connections from it.
	DB *sql.DB
	// Target describes where DB points.
	Target *dsn.Target
	// inspector provides schema metadata caching and introspection
	inspector *SchemaInspector
}

// Open opens the target and verifies it answers a ping.
func Open(ctx context.Context, target *dsn.Target) (*Executor, error) {
	db, err := sql.Open(target.Driver, target.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", target.Display, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to %s: %w", target.Display, err)
	}
	slog.Debug("database opened", "driver", target.Driver, "target", target.Display)

	e := &Executor{DB: db, Target: target}
	e.inspector = NewSchemaInspector(db)
	return e, nil
}

// Inspector returns the executor's schema inspector.
func (e *Executor) Inspector() *SchemaInspector { return e.inspector }

// Session pins one connection from the pool. The caller must Close it.
func (e *Executor) Session(ctx context.Context) (*Session, error) {
	conn, err := e.DB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &Session{conn: conn}, nil
}

// Query runs a read statement and collects every row.
func (e *Executor) Query(ctx context.Context, query string, args ...any) (Result, error) {
	res := Result{
		Columns: []string{},
		Rows:    [][]any{},
	}

	rows, err := e.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return res, fmt.Errorf("failed to query data: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return res, fmt.Errorf("failed to get columns: %w", err)
	}
	res.Columns = cols

	for rows.Next() {
		values := make([]any, len(cols))
		scanArgs := make([]any, len(cols))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return res, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("error iterating rows: %w", err)
	}

	return res, nil
}

// Close closes the underlying database handle.
func (e *Executor) Close() error {
	return e.DB.Close()
}

// OpenSession opens target and pins a single connection. Closing the
// returned session also closes the database handle.
func OpenSession(ctx context.Context, target *dsn.Target) (*Session, error) {
	e, err := Open(ctx, target)
	if err != nil {
		return nil, err
	}
	s, err := e.Session(ctx)
	if err != nil {
		e.Close()
		return nil, err
	}
	s.owner = e
	return s, nil
}
