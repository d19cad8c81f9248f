// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"seedfast/xsvload/internal/dsn"
	xerr "seedfast/xsvload/internal/errors"
)

func TestParseIsolation(t *testing.T) {
	tests := []struct {
		in      string
		want    Isolation
		wantErr bool
	}{
		{in: "deferred", want: Deferred},
		{in: "IMMEDIATE", want: Immediate},
		{in: " Exclusive ", want: Exclusive},
		{in: "serializable", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIsolation(tt.in)
			if tt.wantErr {
				if !xerr.Is(err, xerr.InvalidConfiguration) {
					t.Fatalf("ParseIsolation(%q) error = %v, want invalid_configuration", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIsolation(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseIsolation(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBeginStatement(t *testing.T) {
	tests := []struct {
		level Isolation
		want  string
	}{
		{Deferred, "BEGIN DEFERRED"},
		{Immediate, "BEGIN IMMEDIATE"},
		{Exclusive, "BEGIN EXCLUSIVE"},
	}
	for _, tt := range tests {
		if got := beginStatement(tt.level); got != tt.want {
			t.Errorf("beginStatement(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
	if Isolation(9).Valid() || Isolation(9).String() != "INVALID" {
		t.Error("out of range level should be invalid")
	}
}

func TestResultMarshalJSON(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	res := Result{
		Columns: []string{"a", "b", "c", "d"},
		Rows:    [][]any{{[]byte("text"), []byte{0xff, 0x00}, ts, int64(7)}},
	}

	out, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"columns":["a","b","c","d"],"rows":[["text","\\xff00","2025-03-01T12:00:00Z",7]]}`
	if string(out) != want {
		t.Errorf("Marshal() = %s\nwant %s", out, want)
	}
}

func openTestDB(t *testing.T) *dsn.Target {
	t.Helper()
	target, err := dsn.Resolve(filepath.Join(t.TempDir(), "test.db"), "")
	if err != nil {
		t.Fatal(err)
	}
	return target
}

func TestSessionTransaction(t *testing.T) {
	ctx := context.Background()
	target := openTestDB(t)

	for _, level := range []Isolation{Deferred, Immediate, Exclusive} {
		t.Run(level.String(), func(t *testing.T) {
			s, err := OpenSession(ctx, target)
			if err != nil {
				t.Fatalf("OpenSession() error = %v", err)
			}
			defer s.Close()

			if err := s.Exec(ctx, "drop table if exists t"); err != nil {
				t.Fatal(err)
			}
			if err := s.Exec(ctx, "create table t (a text, b text)"); err != nil {
				t.Fatal(err)
			}

			if err := s.Begin(ctx, level); err != nil {
				t.Fatalf("Begin() error = %v", err)
			}
			n, err := s.ExecMany(ctx, "insert into t values (?,?)", [][]string{{"1", "x"}, {"2", "y"}})
			if err != nil || n != 2 {
				t.Fatalf("ExecMany() = %d, %v", n, err)
			}
			if err := s.Rollback(ctx); err != nil {
				t.Fatalf("Rollback() error = %v", err)
			}

			if err := s.Begin(ctx, level); err != nil {
				t.Fatal(err)
			}
			if _, err := s.ExecMany(ctx, "insert into t values (?,?)", [][]string{{"3", "z"}}); err != nil {
				t.Fatal(err)
			}
			if err := s.Commit(ctx); err != nil {
				t.Fatalf("Commit() error = %v", err)
			}
		})
	}

	e, err := Open(ctx, target)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	res, err := e.Query(ctx, "select a, b from t")
	if err != nil {
		t.Fatal(err)
	}
	if want := [][]any{{"3", "z"}}; !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("rows = %v, want %v", res.Rows, want)
	}
}

func TestExecManyReportsFailingRow(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSession(ctx, openTestDB(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Exec(ctx, "create table t (id text primary key)"); err != nil {
		t.Fatal(err)
	}
	n, err := s.ExecMany(ctx, "insert into t values (?)", [][]string{{"1"}, {"2"}, {"1"}, {"4"}})

	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("ExecMany() error = %v, want *RowError", err)
	}
	if rowErr.Row != 3 || n != 2 {
		t.Errorf("failed at row %d after %d rows, want row 3 after 2", rowErr.Row, n)
	}
}

func TestBeginRejectsInvalidLevel(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSession(ctx, openTestDB(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Begin(ctx, Isolation(-1)); err == nil {
		t.Error("Begin() with invalid level should fail")
	}
}

func TestSchemaInspector(t *testing.T) {
	ctx := context.Background()
	e, err := Open(ctx, openTestDB(t))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if _, err := e.DB.ExecContext(ctx, "create table people (id integer primary key, name text not null)"); err != nil {
		t.Fatal(err)
	}

	info, err := e.Inspector().GetSchemaInfo(ctx, "people")
	if err != nil {
		t.Fatalf("GetSchemaInfo() error = %v", err)
	}
	if info == nil {
		t.Fatal("GetSchemaInfo() returned nil for an existing table")
	}
	if got := info.ColumnNames(); !reflect.DeepEqual(got, []string{"id", "name"}) {
		t.Errorf("ColumnNames() = %v", got)
	}
	if !info.Columns[0].PK || !info.Columns[1].NotNull {
		t.Errorf("columns = %+v", info.Columns)
	}

	missing, err := e.Inspector().GetSchemaInfo(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("GetSchemaInfo(missing) = %v, %v; want nil, nil", missing, err)
	}
}
