// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"io"
	"strings"

	xerr "seedfast/xsvload/internal/errors"

	"github.com/pterm/pterm"
)

var titles = map[xerr.Kind]string{
	xerr.InvalidConfiguration: "Invalid Import Configuration",
	xerr.IOError:              "Source File Unreadable",
	xerr.ParseError:           "Malformed Source File",
	xerr.ShapeMismatch:        "Inconsistent Columns",
	xerr.SchemaError:          "Table Creation Failed",
	xerr.InsertError:          "Row Rejected",
	xerr.TransactionError:     "Transaction Failed",
}

// FormatImportError formats an import failure for the terminal, with a hint
// chosen by the error's kind.
func FormatImportError(err error) string {
	if err == nil {
		return ""
	}
	kind := xerr.KindOf(err)

	var builder strings.Builder

	title, ok := titles[kind]
	if !ok {
		title = "Import Failed"
	}
	builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint(title))
	builder.WriteString("\n\n")

	switch kind {
	case xerr.InvalidConfiguration:
		builder.WriteString("The import was not started.\n")
		builder.WriteString("Check that:\n")
		builder.WriteString("  • the source file ends in .csv, .tsv or .psv\n")
		builder.WriteString("  • --create-table is combined with --header-skip or --ddl\n")
		builder.WriteString("  • the isolation level is deferred, immediate or exclusive\n")

	case xerr.IOError:
		builder.WriteString("The source file could not be opened or read.\n")

	case xerr.ParseError:
		builder.WriteString("The source file could not be split into fields.\n")
		builder.WriteString("Look for unbalanced quotes near the reported line.\n")

	case xerr.ShapeMismatch:
		builder.WriteString("Every row must have the same number of fields.\n")
		builder.WriteString("Nothing was written to the database.\n")

	case xerr.SchemaError, xerr.InsertError:
		builder.WriteString("The database rejected the import and it was rolled back.\n")
		builder.WriteString("No rows from this file were stored.\n")

	case xerr.TransactionError:
		builder.WriteString("The transaction could not be opened, committed or rolled back.\n")
		builder.WriteString("Another process may hold a lock on the database.\n")

	default:
		builder.WriteString("The import stopped unexpectedly.\n")
	}

	builder.WriteString("\n")
	builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(err.Error())))

	return builder.String()
}

// PresentImportError writes a formatted import error to w.
func PresentImportError(w io.Writer, err error) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, FormatImportError(err))
	fmt.Fprintln(w)
}
