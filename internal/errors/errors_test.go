// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: stderrors.New("boom"), want: ""},
		{name: "direct", err: New(ShapeMismatch, "rows differ"), want: ShapeMismatch},
		{name: "wrapped by fmt", err: fmt.Errorf("run: %w", Wrap(InsertError, "row 3", fs.ErrExist)), want: InsertError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsWalksNestedKinds(t *testing.T) {
	inner := Wrap(InsertError, "row 3", fs.ErrPermission)
	outer := Wrap(TransactionError, "rollback failed", inner)

	if !Is(outer, TransactionError) {
		t.Error("expected outer kind to match")
	}
	if !Is(outer, InsertError) {
		t.Error("expected nested kind to match")
	}
	if Is(outer, SchemaError) {
		t.Error("unexpected match for schema_error")
	}
	if !stderrors.Is(outer, fs.ErrPermission) {
		t.Error("expected cause to stay reachable through Unwrap")
	}
}

func TestErrorString(t *testing.T) {
	e := Wrap(IOError, "open data.csv", fs.ErrNotExist)
	want := "io_error: open data.csv: file does not exist"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
	if got := New(ParseError, "bad quote").Error(); got != "parse_error: bad quote" {
		t.Errorf("Error() = %q", got)
	}
}
