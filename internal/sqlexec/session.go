// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Session is one pinned database connection. Transaction control is issued
// as plain statements so that database/sql does not interfere with the
// BEGIN mode.
//
// A Session is not safe for concurrent use.
type Session struct {
	conn  *sql.Conn
	owner *Executor
}

// Exec runs a single statement.
func (s *Session) Exec(ctx context.Context, query string, args ...any) error {
	slog.Debug("exec", "sql", truncate(query, 200))
	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}

// ExecMany prepares query once and executes it for every row, binding the
// row's fields positionally. It stops at the first failing row and returns
// the number of rows executed before it.
func (s *Session) ExecMany(ctx context.Context, query string, rows [][]string) (int64, error) {
	slog.Debug("exec many", "sql", truncate(query, 200), "rows", len(rows))
	stmt, err := s.conn.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare %q: %w", query, err)
	}
	defer stmt.Close()

	var n int64
	args := make([]any, 0)
	for i, row := range rows {
		args = args[:0]
		for _, field := range row {
			args = append(args, field)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return n, &RowError{Row: i + 1, Err: err}
		}
		n++
	}
	return n, nil
}

// Begin opens a transaction at the given isolation level.
func (s *Session) Begin(ctx context.Context, level Isolation) error {
	if !level.Valid() {
		return fmt.Errorf("invalid isolation level %d", int(level))
	}
	return s.Exec(ctx, beginStatement(level))
}

// Commit commits the open transaction.
func (s *Session) Commit(ctx context.Context) error {
	return s.Exec(ctx, "COMMIT")
}

// Rollback rolls back the open transaction.
func (s *Session) Rollback(ctx context.Context) error {
	return s.Exec(ctx, "ROLLBACK")
}

// Close returns the connection and, for sessions created by OpenSession,
// closes the database handle as well. Both are attempted even if the first
// fails.
func (s *Session) Close() error {
	err := s.conn.Close()
	if s.owner != nil {
		err = errors.Join(err, s.owner.Close())
	}
	return err
}

// RowError reports which row of an ExecMany batch failed (1-based).
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// truncate returns first n characters of s, or entire s if shorter
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
