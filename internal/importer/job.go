// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package importer

import (
	"strings"

	xerr "seedfast/xsvload/internal/errors"
	"seedfast/xsvload/internal/sqlexec"
	"seedfast/xsvload/internal/xsv"

	"github.com/google/uuid"
)

// Options is the caller input for one import.
type Options struct {
	// SourceFile is the .csv, .tsv or .psv file to read.
	SourceFile string
	// Database identifies the destination database (informational; the
	// connection itself comes from the Opener passed to Run).
	Database string
	// Table is the destination table.
	Table string
	// HeaderSkip consumes the first record as the header.
	HeaderSkip bool
	// CreateTable drops and recreates Table before loading.
	CreateTable bool
	// DDL is an explicit CREATE TABLE statement. It is replaced by the
	// synthesized statement when both HeaderSkip and CreateTable are set.
	DDL string
	// Isolation is the BEGIN mode of the import transaction.
	Isolation sqlexec.Isolation
}

// Job is a validated, immutable import configuration. Build it with NewJob.
type Job struct {
	runID      string
	source     string
	database   string
	table      string
	headerSkip bool
	create     bool
	ddl        string
	isolation  sqlexec.Isolation
	delimiter  xsv.Delimiter
}

// NewJob validates opts and returns a Job. All configuration checks happen
// here; a returned error is always of kind invalid_configuration.
func NewJob(opts Options) (*Job, error) {
	delim, err := xsv.ResolveDelimiter(opts.SourceFile)
	if err != nil {
		return nil, err
	}

	table := strings.TrimSpace(opts.Table)
	if table == "" {
		return nil, xerr.New(xerr.InvalidConfiguration, "an output table name is required")
	}

	if !opts.Isolation.Valid() {
		return nil, xerr.Newf(xerr.InvalidConfiguration, "invalid isolation level %d", int(opts.Isolation))
	}

	ddl := strings.TrimSpace(opts.DDL)
	if opts.CreateTable && !opts.HeaderSkip && ddl == "" {
		return nil, xerr.New(xerr.InvalidConfiguration,
			"creating the table needs either the header row (--header-skip) or an explicit DDL statement (--ddl)")
	}

	return &Job{
		runID:      uuid.NewString(),
		source:     opts.SourceFile,
		database:   opts.Database,
		table:      table,
		headerSkip: opts.HeaderSkip,
		create:     opts.CreateTable,
		ddl:        ddl,
		isolation:  opts.Isolation,
		delimiter:  delim,
	}, nil
}

func (j *Job) RunID() string                { return j.runID }
func (j *Job) Source() string               { return j.source }
func (j *Job) Database() string             { return j.database }
func (j *Job) Table() string                { return j.table }
func (j *Job) HeaderSkip() bool             { return j.headerSkip }
func (j *Job) CreateTable() bool            { return j.create }
func (j *Job) DDL() string                  { return j.ddl }
func (j *Job) Isolation() sqlexec.Isolation { return j.isolation }
func (j *Job) Delimiter() xsv.Delimiter     { return j.delimiter }

// synthesizes reports whether the DDL comes from the header row.
func (j *Job) synthesizes() bool {
	return j.create && j.headerSkip
}
