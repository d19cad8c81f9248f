// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package progress turns importer stage events into terminal output, log
// records, or an in-memory transcript.
package progress

import (
	"strings"
	"sync"
	"unicode/utf8"

	"seedfast/xsvload/internal/importer"
)

// Status of a single step.
type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Step is one stage of an import as seen by the sink.
type Step struct {
	Stage  importer.Stage
	Detail string
	Status Status
}

// State tracks the steps of the current import in arrival order.
type State struct {
	steps []Step
	// failed is set once a rollback event arrives
	failed bool
	// maxLabel is the widest stage label seen, for column alignment
	maxLabel int
	// mu protects concurrent access to all fields
	mu sync.Mutex
}

// NewState creates an empty State.
func NewState() *State {
	return &State{steps: []Step{}}
}

// Advance records a new stage. The previous running step is marked done,
// or failed when stage is a rollback. Terminal stages are recorded as done.
func (s *State) Advance(stage importer.Stage, detail string) Step {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.steps); n > 0 && s.steps[n-1].Status == StatusRunning {
		if stage == importer.StageRollback {
			s.steps[n-1].Status = StatusFailed
		} else {
			s.steps[n-1].Status = StatusDone
		}
	}

	step := Step{Stage: stage, Detail: detail, Status: StatusRunning}
	switch stage {
	case importer.StageRollback:
		s.failed = true
		step.Status = StatusDone
	case importer.StageComplete, importer.StageClose:
		step.Status = StatusDone
	}
	s.steps = append(s.steps, step)

	if l := utf8.RuneCountInString(string(stage)); l > s.maxLabel {
		s.maxLabel = l
	}
	return step
}

// Steps returns a copy of the recorded steps.
func (s *State) Steps() []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// HasFailures reports whether the import rolled back.
func (s *State) HasFailures() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Reset clears all steps for a new import.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = []Step{}
	s.failed = false
	s.maxLabel = 0
}

// Label pads stage to the widest label seen so far.
func (s *State) Label(stage importer.Stage) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	label := string(stage)
	if pad := s.maxLabel - utf8.RuneCountInString(label); pad > 0 {
		return label + strings.Repeat(" ", pad)
	}
	return label
}
