// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package progress

import (
	"io"
	"os"

	"seedfast/xsvload/internal/importer"

	"github.com/pterm/pterm"
)

// Renderer prints one styled line per import stage.
type Renderer struct {
	w       io.Writer
	state   *State
	verbose bool
}

// NewRenderer creates a renderer writing to w (stdout when nil). Quiet
// stages (open, close, validate) are only shown when verbose is set.
func NewRenderer(w io.Writer, verbose bool) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	return &Renderer{w: w, state: NewState(), verbose: verbose}
}

// State exposes the steps rendered so far.
func (r *Renderer) State() *State { return r.state }

// OnEvent implements importer.Sink.
func (r *Renderer) OnEvent(stage importer.Stage, detail string) {
	r.state.Advance(stage, detail)

	switch stage {
	case importer.StageComplete:
		pterm.Fprintln(r.w, pterm.Success.Sprint(detail))
	case importer.StageRollback:
		pterm.Fprintln(r.w, pterm.Warning.Sprint(detail))
	case importer.StageValidate, importer.StageOpen, importer.StageClose:
		if r.verbose {
			r.line(pterm.FgGray, stage, detail)
		}
	case importer.StageBegin, importer.StageCommit:
		r.line(pterm.FgLightBlue, stage, detail)
	default:
		r.line(pterm.FgLightCyan, stage, detail)
	}
}

func (r *Renderer) line(color pterm.Color, stage importer.Stage, detail string) {
	label := pterm.NewStyle(color, pterm.Bold).Sprint(r.state.Label(stage))
	pterm.Fprintln(r.w, "  "+label+"  "+detail)
}
