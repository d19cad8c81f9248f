// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import "fmt"

// DBType represents the kind of database a target points at.
type DBType string

const (
	DBTypeSQLite  DBType = "sqlite"
	DBTypeLibSQL  DBType = "libsql"
	DBTypeUnknown DBType = "unknown"
)

// Target is a resolved destination database: which database/sql driver to
// use and the connection string to hand it.
type Target struct {
	Type DBType
	// Driver is the database/sql driver name.
	Driver string
	// DSN is passed to sql.Open as is. It may carry an auth token.
	DSN string
	// Host is the remote host for libSQL targets, empty for local files.
	Host string
	// Display is DSN with secrets masked, safe to print.
	Display string
	// Original is the user input.
	Original string
}

// String returns the masked form of the target.
func (t *Target) String() string {
	return t.Display
}

// Remote reports whether the target lives on a libSQL server.
func (t *Target) Remote() bool {
	return t.Type == DBTypeLibSQL
}

// Resolver is an interface for database-specific target resolution
type Resolver interface {
	// Resolve turns raw user input into a Target
	Resolve(raw, token string) (*Target, error)

	// Validate checks if the input is acceptable for the database type
	Validate(raw string) error
}

// ParseError represents an error that occurred during target parsing
type ParseError struct {
	DSN    string
	Reason string
	Hint   string
}

func (e *ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("invalid database target: %s\nHint: %s", e.Reason, e.Hint)
	}
	return fmt.Sprintf("invalid database target: %s", e.Reason)
}

// NewParseError creates a new ParseError
func NewParseError(dsn, reason, hint string) *ParseError {
	return &ParseError{
		DSN:    dsn,
		Reason: reason,
		Hint:   hint,
	}
}
