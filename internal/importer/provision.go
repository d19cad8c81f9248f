// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package importer

import (
	"context"

	xerr "seedfast/xsvload/internal/errors"
)

// DropStatement returns the statement that removes table if it exists.
func DropStatement(table string) string {
	return "drop table if exists " + table + ";"
}

// Provision drops table if present and runs ddl, both inside the caller's
// open transaction.
func Provision(ctx context.Context, conn Conn, table, ddl string) error {
	if err := conn.Exec(ctx, DropStatement(table)); err != nil {
		return xerr.Wrap(xerr.SchemaError, "drop table "+table, err)
	}
	if err := conn.Exec(ctx, ddl); err != nil {
		return xerr.Wrap(xerr.SchemaError, "create table "+table, err)
	}
	return nil
}
