// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package progress

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"

	"seedfast/xsvload/internal/importer"

	"github.com/pterm/pterm"
)

func TestStateAdvance(t *testing.T) {
	s := NewState()
	s.Advance(importer.StageRead, "reading")
	s.Advance(importer.StageInsert, "inserting")
	s.Advance(importer.StageRollback, "rolling back")
	s.Advance(importer.StageClose, "releasing")

	got := s.Steps()
	want := []Status{StatusDone, StatusFailed, StatusDone, StatusDone}
	for i, st := range got {
		if st.Status != want[i] {
			t.Errorf("step %d (%s) status = %s, want %s", i, st.Stage, st.Status, want[i])
		}
	}
	if !s.HasFailures() {
		t.Error("HasFailures() = false after rollback")
	}

	if l := s.Label(importer.StageRead); l != "read    " {
		t.Errorf("Label(read) = %q, want padding to %d", l, len("rollback"))
	}

	s.Reset()
	if len(s.Steps()) != 0 || s.HasFailures() {
		t.Error("Reset() did not clear state")
	}
}

func TestRendererOutput(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tests := []struct {
		name    string
		verbose bool
		want    []string
		hidden  []string
	}{
		{
			name:   "default",
			want:   []string{"reading a.csv", "BEGIN IMMEDIATE", "2 rows imported"},
			hidden: []string{"connecting to", "releasing connection"},
		},
		{
			name:    "verbose",
			verbose: true,
			want:    []string{"reading a.csv", "connecting to", "releasing connection", "2 rows imported"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRenderer(&buf, tt.verbose)
			r.OnEvent(importer.StageRead, "reading a.csv")
			r.OnEvent(importer.StageOpen, "connecting to out.db")
			r.OnEvent(importer.StageBegin, "BEGIN IMMEDIATE")
			r.OnEvent(importer.StageComplete, "2 rows imported into t")
			r.OnEvent(importer.StageClose, "releasing connection")

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, h := range tt.hidden {
				if strings.Contains(out, h) {
					t.Errorf("output should not contain %q:\n%s", h, out)
				}
			}
			if len(r.State().Steps()) != 5 {
				t.Errorf("state recorded %d steps, want 5", len(r.State().Steps()))
			}
		})
	}
}

// event is one recorded sink call.
type event struct {
	Stage  importer.Stage
	Detail string
}

// recorder keeps every event in memory.
type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) OnEvent(stage importer.Stage, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{Stage: stage, Detail: detail})
}

// Events returns a copy of the recorded events.
func (r *recorder) Events() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event, len(r.events))
	copy(out, r.events)
	return out
}

// Stages returns the recorded stages in order.
func (r *recorder) Stages() []importer.Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]importer.Stage, len(r.events))
	for i, e := range r.events {
		out[i] = e.Stage
	}
	return out
}

func TestTee(t *testing.T) {
	var a, b recorder
	sink := Tee(&a, nil, &b)
	sink.OnEvent(importer.StageBegin, "BEGIN DEFERRED")
	sink.OnEvent(importer.StageCommit, "committing")

	want := []importer.Stage{importer.StageBegin, importer.StageCommit}
	if !reflect.DeepEqual(a.Stages(), want) || !reflect.DeepEqual(b.Stages(), want) {
		t.Errorf("stages = %v / %v, want %v", a.Stages(), b.Stages(), want)
	}
	if ev := a.Events()[0]; ev.Detail != "BEGIN DEFERRED" {
		t.Errorf("detail = %q", ev.Detail)
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	LogSink{Logger: logger}.OnEvent(importer.StageInsert, "inserting 3 rows")

	out := buf.String()
	if !strings.Contains(out, "stage=insert") || !strings.Contains(out, `detail="inserting 3 rows"`) {
		t.Errorf("log output = %q", out)
	}
}
