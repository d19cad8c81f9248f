// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package xsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	xerr "seedfast/xsvload/internal/errors"
)

// Header is the ordered list of column names from the first record.
// It is nil when the header row is not skipped.
type Header []string

// DataSet is the parsed file body, one slice of fields per record.
type DataSet [][]string

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// ReadFile opens path and parses it with Read. The file is closed on every
// return path.
func ReadFile(path string, delim Delimiter, headerSkip bool) (Header, DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, xerr.Wrap(xerr.IOError, "open source file "+path, err)
	}
	defer f.Close()

	return Read(f, delim, headerSkip)
}

// Read parses UTF-8 delimited text from r. When headerSkip is true the first
// record becomes the Header and is excluded from the DataSet.
//
// Quoting is lenient: a stray quote inside a field is kept as a literal
// character. A quoted field left open at end of input is still a ParseError.
// Blank lines are skipped. Field counts are not enforced here; see
// ColumnCount.
func Read(r io.Reader, delim Delimiter, headerSkip bool) (Header, DataSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, xerr.Wrap(xerr.IOError, "read source file", err)
	}
	data = bytes.TrimPrefix(data, bomUTF8)
	if !utf8.Valid(data) {
		return nil, nil, xerr.New(xerr.ParseError, "source file is not valid UTF-8")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = rune(delim)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Start of the last field read so far, for the unterminated quote check.
	lastLine, lastCol := 0, 0
	mark := func(rec []string) {
		if len(rec) > 0 {
			lastLine, lastCol = reader.FieldPos(len(rec) - 1)
		}
	}

	var header Header
	if headerSkip {
		rec, err := reader.Read()
		switch {
		case errors.Is(err, io.EOF):
			return nil, DataSet{}, nil
		case err != nil:
			return nil, nil, parseError(err)
		}
		mark(rec)
		header = Header(rec)
	}

	rows := DataSet{}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, parseError(err)
		}
		mark(rec)
		rows = append(rows, rec)
	}

	if lastLine > 0 && unterminatedQuote(data, lastLine, lastCol) {
		return nil, nil, xerr.Newf(xerr.ParseError, "unterminated quoted field starting on line %d", lastLine)
	}

	return header, rows, nil
}

// unterminatedQuote reports whether the field starting at line:col opens a
// quote that is never closed. Such a field always runs to the end of data,
// so only the last field of the last record needs checking. A closed field
// ends in an odd run of quotes: the escaped pairs plus the closing one.
func unterminatedQuote(data []byte, line, col int) bool {
	off := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(data[off:], '\n')
		if i < 0 {
			return false
		}
		off += i + 1
	}
	off += col - 1
	if off < 0 || off >= len(data) || data[off] != '"' {
		return false
	}
	rest := bytes.TrimRight(data[off+1:], "\r\n")
	run := len(rest) - len(bytes.TrimRight(rest, `"`))
	return run%2 == 0
}

func parseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return xerr.Wrap(xerr.ParseError, fmt.Sprintf("malformed record on line %d", pe.StartLine), err)
	}
	return xerr.Wrap(xerr.ParseError, "malformed record", err)
}
