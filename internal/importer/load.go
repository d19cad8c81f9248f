// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	xerr "seedfast/xsvload/internal/errors"
	"seedfast/xsvload/internal/sqlexec"
	"seedfast/xsvload/internal/xsv"
)

// InsertStatement returns an INSERT for table with exactly columns
// positional placeholders.
func InsertStatement(table string, columns int) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", columns), ",")
	return fmt.Sprintf("insert into %s values (%s)", table, placeholders)
}

// Load inserts every row of data into table as one batch on conn.
func Load(ctx context.Context, conn Conn, table string, data xsv.DataSet, columns int) (int64, error) {
	if columns < 1 {
		return 0, xerr.Newf(xerr.ShapeMismatch, "cannot insert rows with %d columns", columns)
	}

	n, err := conn.ExecMany(ctx, InsertStatement(table, columns), data)
	if err != nil {
		var rowErr *sqlexec.RowError
		if errors.As(err, &rowErr) {
			return n, xerr.Wrap(xerr.InsertError, fmt.Sprintf("insert row %d of %d into %s", rowErr.Row, len(data), table), rowErr.Err)
		}
		return n, xerr.Wrap(xerr.InsertError, "insert into "+table, err)
	}
	return n, nil
}
