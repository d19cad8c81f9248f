// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dsn resolves the --output-database argument into a database/sql
// driver name and connection string. Local paths and file: URIs are opened
// with the embedded SQLite driver; libsql://, http(s):// and ws(s):// URLs
// are opened with the libSQL client.
package dsn

import (
	"strings"
)

var remoteSchemes = []string{"libsql://", "https://", "http://", "wss://", "ws://"}

// DetectDBType detects the database type from user input. Anything without
// a URL scheme is treated as a local SQLite path.
func DetectDBType(raw string) DBType {
	lower := strings.ToLower(strings.TrimSpace(raw))

	for _, s := range remoteSchemes {
		if strings.HasPrefix(lower, s) {
			return DBTypeLibSQL
		}
	}
	if strings.HasPrefix(lower, "file:") || lower == ":memory:" {
		return DBTypeSQLite
	}
	if strings.Contains(lower, "://") {
		return DBTypeUnknown
	}
	return DBTypeSQLite
}

func resolverFor(raw string) (Resolver, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, NewParseError(raw, "empty database target", "pass a SQLite file path or a libsql:// URL with --output-database")
	}

	switch DetectDBType(raw) {
	case DBTypeSQLite:
		return NewSQLiteResolver(), nil
	case DBTypeLibSQL:
		return NewLibSQLResolver(), nil
	default:
		return nil, NewParseError(raw, "unknown database type", "use a file path, file:, libsql://, https:// or wss://")
	}
}

// Resolve is the main entry point. token is only used for remote targets
// and may be empty.
func Resolve(raw, token string) (*Target, error) {
	r, err := resolverFor(raw)
	if err != nil {
		return nil, err
	}
	return r.Resolve(strings.TrimSpace(raw), token)
}

// Validate validates user input without resolving it.
func Validate(raw string) error {
	r, err := resolverFor(raw)
	if err != nil {
		return err
	}
	return r.Validate(strings.TrimSpace(raw))
}
