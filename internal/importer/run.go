// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	xerr "seedfast/xsvload/internal/errors"
	"seedfast/xsvload/internal/logging"
)

// Result summarizes a committed import.
type Result struct {
	RunID    string
	Table    string
	Rows     int64
	Columns  int
	Created  bool
	DDL      string
	Duration time.Duration
}

// Run executes job: prepare, open, BEGIN, provision, load, COMMIT. Any
// failure after BEGIN rolls back; the connection from open is closed on
// every path once acquired.
func Run(ctx context.Context, job *Job, open Opener, sink Sink) (res *Result, err error) {
	if sink == nil {
		sink = Discard
	}
	startAt := time.Now()
	ctx = logging.ContextWithRunID(ctx, job.RunID())
	log := logging.WithFields(ctx, "table", job.Table(), "source", job.Source())

	sink.OnEvent(StageValidate, fmt.Sprintf("importing %s into table %s (%s)", job.Source(), job.Table(), job.Isolation()))
	plan, err := Prepare(job, sink)
	if err != nil {
		log.Debug("preparation failed", "error", err)
		return nil, err
	}

	sink.OnEvent(StageOpen, "connecting to "+job.Database())
	conn, err := open(ctx)
	if err != nil {
		return nil, xerr.Wrap(xerr.TransactionError, "open database", err)
	}
	defer func() {
		sink.OnEvent(StageClose, "releasing connection")
		cerr := conn.Close()
		if cerr == nil {
			return
		}
		if err == nil {
			log.Warn("closing connection failed after commit", "error", cerr)
			return
		}
		err = errors.Join(err, fmt.Errorf("close connection: %w", cerr))
	}()

	sink.OnEvent(StageBegin, "BEGIN "+job.Isolation().String())
	if err := conn.Begin(ctx, job.Isolation()); err != nil {
		return nil, xerr.Wrap(xerr.TransactionError, "begin "+job.Isolation().String()+" transaction", err)
	}

	rows, err := apply(ctx, conn, job, plan, sink)
	if err != nil {
		log.Info("import failed, rolling back", "error", logging.Mask(err.Error()))
		sink.OnEvent(StageRollback, "rolling back: "+string(xerr.KindOf(err)))
		if rbErr := conn.Rollback(ctx); rbErr != nil {
			return nil, xerr.Wrap(xerr.TransactionError, "rollback failed", errors.Join(err, rbErr))
		}
		return nil, err
	}

	sink.OnEvent(StageCommit, fmt.Sprintf("committing %d rows", rows))
	if err := conn.Commit(ctx); err != nil {
		cerr := xerr.Wrap(xerr.TransactionError, "commit", err)
		if rbErr := conn.Rollback(ctx); rbErr != nil {
			log.Debug("rollback after failed commit", "error", rbErr)
		}
		return nil, cerr
	}

	res = &Result{
		RunID:    job.RunID(),
		Table:    job.Table(),
		Rows:     rows,
		Columns:  plan.Columns,
		Created:  job.CreateTable(),
		DDL:      plan.DDL,
		Duration: time.Since(startAt),
	}
	log.Info("import committed", "rows", rows, "columns", plan.Columns, "duration", res.Duration)
	sink.OnEvent(StageComplete, fmt.Sprintf("%d rows imported into %s", rows, job.Table()))
	return res, nil
}

// apply is the body of the transaction.
func apply(ctx context.Context, conn Conn, job *Job, plan *Plan, sink Sink) (int64, error) {
	if job.CreateTable() {
		sink.OnEvent(StageProvision, "dropping and creating table "+job.Table())
		if err := Provision(ctx, conn, job.Table(), plan.DDL); err != nil {
			return 0, err
		}
	}

	sink.OnEvent(StageInsert, fmt.Sprintf("inserting %d rows of %d columns", len(plan.Data), plan.Columns))
	return Load(ctx, conn, job.Table(), plan.Data, plan.Columns)
}
