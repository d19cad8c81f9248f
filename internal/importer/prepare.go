// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package importer

import (
	"fmt"

	"seedfast/xsvload/internal/xsv"
)

// Plan is everything Run needs from the source file, computed before the
// database is touched.
type Plan struct {
	Header  xsv.Header
	Data    xsv.DataSet
	Columns int
	// DDL is the statement to provision the table with, empty when the
	// job appends into an existing table.
	DDL string
}

// Prepare reads the job's source file, validates its shape and resolves the
// table DDL.
func Prepare(job *Job, sink Sink) (*Plan, error) {
	if sink == nil {
		sink = Discard
	}

	sink.OnEvent(StageRead, fmt.Sprintf("reading %s (%s separated)", job.Source(), job.Delimiter()))
	header, data, err := xsv.ReadFile(job.Source(), job.Delimiter(), job.HeaderSkip())
	if err != nil {
		return nil, err
	}

	sink.OnEvent(StageShape, fmt.Sprintf("checking %d rows", len(data)))
	columns, err := xsv.ColumnCount(data)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Header: header, Data: data, Columns: columns}
	if !job.CreateTable() {
		return plan, nil
	}

	if job.synthesizes() {
		sink.OnEvent(StageSynthesize, fmt.Sprintf("building table definition from %d header columns", len(header)))
		ddl, err := xsv.SynthesizeDDL(job.Table(), header)
		if err != nil {
			return nil, err
		}
		if err := xsv.MatchHeader(header, columns); err != nil {
			return nil, err
		}
		plan.DDL = ddl
		return plan, nil
	}

	plan.DDL = job.DDL()
	return plan, nil
}
