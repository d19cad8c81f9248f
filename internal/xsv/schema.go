// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package xsv

import (
	"strings"

	xerr "seedfast/xsvload/internal/errors"
)

// SynthesizeDDL builds a CREATE TABLE statement for table with one text
// column per header entry, in header order.
//
// Column names are used verbatim. Duplicate names, reserved words and names
// that need quoting are not checked; the engine rejects them when the DDL runs.
func SynthesizeDDL(table string, header Header) (string, error) {
	if len(header) == 0 {
		return "", xerr.New(xerr.InvalidConfiguration, "a header row is required to create the table")
	}

	cols := make([]string, len(header))
	for i, name := range header {
		cols[i] = name + " text"
	}

	var b strings.Builder
	b.WriteString("create table ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(");")
	return b.String(), nil
}
