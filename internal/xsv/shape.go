// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package xsv

import (
	xerr "seedfast/xsvload/internal/errors"
)

// ColumnCount returns the field count shared by every row of data.
// Rows are numbered from 1 in the error, counting data rows only.
// An empty data set has no determinable width and is rejected.
func ColumnCount(data DataSet) (int, error) {
	if len(data) == 0 {
		return 0, xerr.New(xerr.ShapeMismatch, "source file has no data rows; column count is undefined")
	}

	want := len(data[0])
	for i, row := range data[1:] {
		if len(row) != want {
			return 0, xerr.Newf(xerr.ShapeMismatch,
				"this import file has different column numbers: row 1 has %d fields, row %d has %d",
				want, i+2, len(row))
		}
	}
	return want, nil
}

// MatchHeader checks that a data set of width columns fits header.
func MatchHeader(header Header, columns int) error {
	if len(header) != columns {
		return xerr.Newf(xerr.ShapeMismatch,
			"header has %d columns but data rows have %d", len(header), columns)
	}
	return nil
}
