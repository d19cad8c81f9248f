// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure the import pipeline can produce is classified by a Kind so the
// CLI can decide how to present it without inspecting driver-specific errors.
//
// The package supports wrapping underlying errors while maintaining error kind information,
// so database and I/O causes stay reachable through errors.Is / errors.As.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// InvalidConfiguration indicates a job that cannot run as configured
	// (unsupported extension, no schema source, empty header).
	InvalidConfiguration Kind = "invalid_configuration"
	// IOError indicates the source file could not be opened or read.
	IOError Kind = "io_error"
	// ParseError indicates malformed delimited content.
	ParseError Kind = "parse_error"
	// ShapeMismatch indicates rows with inconsistent field counts.
	ShapeMismatch Kind = "shape_mismatch"
	// SchemaError indicates DDL rejected by the database engine.
	SchemaError Kind = "schema_error"
	// InsertError indicates a row rejected by the database engine.
	InsertError Kind = "insert_error"
	// TransactionError indicates BEGIN, COMMIT or ROLLBACK itself failed.
	TransactionError Kind = "transaction_error"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Newf is New with a format string.
func Newf(kind Kind, format string, args ...any) *E {
	return &E{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *E in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	for err != nil {
		var e *E
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
