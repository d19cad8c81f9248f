// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package importer

// Stage names a step of an import run.
type Stage string

const (
	StageValidate   Stage = "validate"
	StageRead       Stage = "read"
	StageShape      Stage = "shape"
	StageSynthesize Stage = "synthesize"
	StageOpen       Stage = "open"
	StageBegin      Stage = "begin"
	StageProvision  Stage = "provision"
	StageInsert     Stage = "insert"
	StageCommit     Stage = "commit"
	StageRollback   Stage = "rollback"
	StageClose      Stage = "close"
	StageComplete   Stage = "complete"
)

// Sink receives progress events. Implementations must not block for long;
// events are delivered synchronously from the import goroutine.
type Sink interface {
	OnEvent(stage Stage, detail string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(stage Stage, detail string)

func (f SinkFunc) OnEvent(stage Stage, detail string) { f(stage, detail) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Stage, string) {})
