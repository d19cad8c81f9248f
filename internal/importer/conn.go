// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package importer

import (
	"context"

	"seedfast/xsvload/internal/sqlexec"
)

// Conn is the database boundary used by an import run. It is satisfied by
// *sqlexec.Session.
type Conn interface {
	Exec(ctx context.Context, query string, args ...any) error
	ExecMany(ctx context.Context, query string, rows [][]string) (int64, error)
	Begin(ctx context.Context, level sqlexec.Isolation) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Close() error
}

// Opener acquires the connection for one run. Run closes it.
type Opener func(ctx context.Context) (Conn, error)

var _ Conn = (*sqlexec.Session)(nil)
