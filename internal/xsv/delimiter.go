// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xsv reads delimiter-separated text files (CSV, TSV, PSV) into an
// in-memory header and data set, checks that the data set is rectangular and
// derives a text-only CREATE TABLE statement from a header row.
package xsv

import (
	"path/filepath"
	"strings"

	xerr "seedfast/xsvload/internal/errors"
)

// Delimiter is the single field separator of an XSV file.
type Delimiter rune

const (
	Comma Delimiter = ','
	Tab   Delimiter = '\t'
	Pipe  Delimiter = '|'
)

var delimiters = map[string]Delimiter{
	".csv": Comma,
	".tsv": Tab,
	".psv": Pipe,
}

// ResolveDelimiter returns the delimiter implied by the extension of path.
// It never touches the filesystem.
func ResolveDelimiter(path string) (Delimiter, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if d, ok := delimiters[ext]; ok {
		return d, nil
	}
	if ext == "" {
		return 0, xerr.Newf(xerr.InvalidConfiguration, "source file %q has no extension; expected .csv, .tsv or .psv", path)
	}
	return 0, xerr.Newf(xerr.InvalidConfiguration, "unsupported source file extension %q; expected .csv, .tsv or .psv", ext)
}

// String returns a printable name for the delimiter.
func (d Delimiter) String() string {
	switch d {
	case Comma:
		return "comma"
	case Tab:
		return "tab"
	case Pipe:
		return "pipe"
	}
	return string(rune(d))
}
