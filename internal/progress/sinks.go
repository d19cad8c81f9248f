// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package progress

import (
	"log/slog"

	"seedfast/xsvload/internal/importer"
)

// LogSink writes every event as a debug record.
type LogSink struct {
	Logger *slog.Logger
}

// OnEvent implements importer.Sink.
func (s LogSink) OnEvent(stage importer.Stage, detail string) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("import stage", "stage", string(stage), "detail", detail)
}

// Tee fans each event out to sinks in order. Nil sinks are skipped.
func Tee(sinks ...importer.Sink) importer.Sink {
	var live []importer.Sink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	return importer.SinkFunc(func(stage importer.Stage, detail string) {
		for _, s := range live {
			s.OnEvent(stage, detail)
		}
	})
}
