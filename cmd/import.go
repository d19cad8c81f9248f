// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"log/slog"
	"strings"
	"time"

	"seedfast/xsvload/internal/importer"
	"seedfast/xsvload/internal/logging"
	"seedfast/xsvload/internal/progress"
	"seedfast/xsvload/internal/sqlexec"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var importFlags struct {
	sourceFile  string
	database    string
	table       string
	headerSkip  bool
	createTable bool
	ddl         string
	isolation   string
	authToken   string
}

// importCmd loads one delimited file into one table.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a csv, tsv or psv file into a database table",
	Long: `The import command reads the source file, checks that every row has the same
number of fields, and inserts all rows inside one transaction.

With --create-table the table is dropped and recreated first, either from the
header row (--header-skip) or from --ddl. Without it, rows are appended to an
existing table. Any failure rolls the whole import back.

Examples:
  xsvload import -s people.csv -o app.db -t people -H -c
  xsvload import -s orders.psv -o libsql://shop.turso.io -t orders -i exclusive`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func runImport(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fail := func(err error) error {
		logging.PresentImportError(cmd.ErrOrStderr(), err)
		return reportedError{err}
	}

	isolation := cfg.Isolation
	if cmd.Flags().Changed("isolation") {
		isolation = importFlags.isolation
	}
	level, err := sqlexec.ParseIsolation(isolation)
	if err != nil {
		return fail(err)
	}

	database, err := databaseArg(importFlags.database)
	if err != nil {
		return fail(err)
	}
	target, source, err := resolveTarget(database, importFlags.authToken)
	if err != nil {
		return fail(err)
	}
	if target.Remote() && source == tokenNone {
		slog.Warn("no auth token found for remote database", "host", target.Host)
	}

	job, err := importer.NewJob(importer.Options{
		SourceFile:  importFlags.sourceFile,
		Database:    target.Display,
		Table:       importFlags.table,
		HeaderSkip:  importFlags.headerSkip,
		CreateTable: importFlags.createTable,
		DDL:         importFlags.ddl,
		Isolation:   level,
	})
	if err != nil {
		return fail(err)
	}

	renderer := progress.NewRenderer(out, verbose)
	sink := progress.Tee(renderer, progress.LogSink{Logger: logging.WithFields(logging.ContextWithRunID(cmd.Context(), job.RunID()))})

	restore := hideCursor()
	res, err := importer.Run(cmd.Context(), job, sessionOpener(target), sink)
	restore()
	if err != nil {
		return fail(err)
	}

	if verbose {
		pterm.Fprintln(out, pterm.NewStyle(pterm.FgGray).Sprintf("run %s, %d columns, %s", res.RunID, res.Columns, res.Duration.Round(time.Millisecond)))
		if res.Created {
			pterm.Fprintln(out, pterm.NewStyle(pterm.FgGray).Sprint(strings.TrimSpace(res.DDL)))
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)

	f := importCmd.Flags()
	f.StringVarP(&importFlags.sourceFile, "source-file", "s", "", "Delimited file to import (.csv, .tsv or .psv)")
	f.StringVarP(&importFlags.database, "output-database", "o", "", "SQLite file or libsql:// URL (default from config)")
	f.StringVarP(&importFlags.table, "output-table", "t", "", "Destination table")
	f.BoolVarP(&importFlags.headerSkip, "header-skip", "H", false, "Treat the first row as the header")
	f.BoolVarP(&importFlags.createTable, "create-table", "c", false, "Drop and recreate the table before loading")
	f.StringVarP(&importFlags.ddl, "ddl", "d", "", "CREATE TABLE statement used with --create-table")
	f.StringVarP(&importFlags.isolation, "isolation", "i", "", "Transaction mode: deferred, immediate or exclusive (default from config, else immediate)")
	f.StringVar(&importFlags.authToken, "auth-token", "", "Auth token for a remote libSQL database")
	_ = importCmd.MarkFlagRequired("source-file")
	_ = importCmd.MarkFlagRequired("output-table")
}
