// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"strings"

	xerr "seedfast/xsvload/internal/errors"
)

// Isolation selects the locking strategy of a SQLite transaction. The
// engine defines the semantics:
//   - Deferred: SHARED lock on first read, RESERVED lock on first write.
//   - Immediate: RESERVED lock as soon as BEGIN runs.
//   - Exclusive: no other connection may read or write until the
//     transaction ends (read_uncommitted readers excepted).
type Isolation int

const (
	Deferred Isolation = iota
	Immediate
	Exclusive
)

// String returns the keyword used in the BEGIN statement.
func (l Isolation) String() string {
	switch l {
	case Deferred:
		return "DEFERRED"
	case Immediate:
		return "IMMEDIATE"
	case Exclusive:
		return "EXCLUSIVE"
	}
	return "INVALID"
}

// Valid reports whether l is one of the three defined levels.
func (l Isolation) Valid() bool {
	return l >= Deferred && l <= Exclusive
}

// ParseIsolation maps "deferred", "immediate" or "exclusive" (any case)
// to an Isolation.
func ParseIsolation(s string) (Isolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deferred":
		return Deferred, nil
	case "immediate":
		return Immediate, nil
	case "exclusive":
		return Exclusive, nil
	}
	return 0, xerr.Newf(xerr.InvalidConfiguration,
		"unknown isolation level %q; expected deferred, immediate or exclusive", s)
}

// beginStatement renders the BEGIN statement for l.
func beginStatement(l Isolation) string {
	return "BEGIN " + l.String()
}
