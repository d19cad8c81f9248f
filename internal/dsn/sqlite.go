// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"strings"
)

// BusyTimeoutPragma makes SQLite wait for locks held by other connections
// instead of failing immediately with SQLITE_BUSY.
const BusyTimeoutPragma = "_pragma=busy_timeout(5000)"

// SQLiteResolver handles local SQLite targets for modernc.org/sqlite.
type SQLiteResolver struct{}

// NewSQLiteResolver creates a new SQLite resolver
func NewSQLiteResolver() *SQLiteResolver {
	return &SQLiteResolver{}
}

// Resolve builds a file: URI for the driver. The token is ignored.
func (r *SQLiteResolver) Resolve(raw, _ string) (*Target, error) {
	if err := r.Validate(raw); err != nil {
		return nil, err
	}

	dsn := raw
	switch {
	case raw == ":memory:":
	case strings.HasPrefix(strings.ToLower(raw), "file:"):
		if !strings.Contains(raw, "_pragma=busy_timeout") {
			dsn = appendParam(raw, BusyTimeoutPragma)
		}
	default:
		dsn = appendParam("file:"+raw, BusyTimeoutPragma)
	}

	return &Target{
		Type:     DBTypeSQLite,
		Driver:   "sqlite",
		DSN:      dsn,
		Display:  raw,
		Original: raw,
	}, nil
}

// Validate rejects paths the driver would misread as URI syntax.
func (r *SQLiteResolver) Validate(raw string) error {
	if raw == "" {
		return NewParseError(raw, "empty database path", "provide a path such as ./data.db")
	}
	if !strings.HasPrefix(strings.ToLower(raw), "file:") && strings.ContainsAny(raw, "?#") {
		return NewParseError(raw, "database path contains '?' or '#'", "use a file: URI to pass query parameters")
	}
	return nil
}

func appendParam(uri, param string) string {
	if strings.Contains(uri, "?") {
		return uri + "&" + param
	}
	return uri + "?" + param
}
