// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"

	xerr "seedfast/xsvload/internal/errors"
	"seedfast/xsvload/internal/logging"
	"seedfast/xsvload/internal/sqlexec"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var previewFlags struct {
	database  string
	table     string
	limit     int
	asJSON    bool
	authToken string
}

// previewOutput is the --json shape of the preview command.
type previewOutput struct {
	Table   string           `json:"table"`
	Schema  []sqlexec.Column `json:"schema"`
	Preview sqlexec.Result   `json:"preview"`
}

// previewCmd shows the columns and first rows of a table.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the columns and first rows of a table",
	Long: `The preview command prints the column definitions of a table and its first
rows, either as a table or, with --json, as a JSON document.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if previewFlags.limit < 1 {
			return xerr.Newf(xerr.InvalidConfiguration, "--limit must be at least 1, got %d", previewFlags.limit)
		}

		database, err := databaseArg(previewFlags.database)
		if err != nil {
			return err
		}
		target, _, err := resolveTarget(database, previewFlags.authToken)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		e, err := sqlexec.Open(ctx, target)
		if err != nil {
			return err
		}
		defer e.Close()

		info, err := e.Inspector().GetSchemaInfo(ctx, previewFlags.table)
		if err != nil {
			return err
		}
		if info == nil {
			return fmt.Errorf("table %q not found in %s", previewFlags.table, target.Display)
		}

		res, err := e.Query(ctx, fmt.Sprintf("select * from %s limit ?", previewFlags.table), previewFlags.limit)
		if err != nil {
			return err
		}

		if previewFlags.asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(previewOutput{Table: info.TableName, Schema: info.Columns, Preview: res})
		}

		schema := pterm.TableData{{"#", "column", "type", "not null", "pk"}}
		for _, c := range info.Columns {
			schema = append(schema, []string{fmt.Sprint(c.CID), c.Name, c.Type, yesNo(c.NotNull), yesNo(c.PK)})
		}
		rendered, err := pterm.DefaultTable.WithHasHeader().WithData(schema).Srender()
		if err != nil {
			return err
		}
		pterm.Fprintln(out, pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprintf("%s (%s)", info.TableName, logging.Mask(target.Display)))
		pterm.Fprintln(out, rendered)
		pterm.Fprintln(out)

		rows := pterm.TableData{res.Columns}
		for _, r := range res.Rows {
			line := make([]string, len(r))
			for i, v := range r {
				if v == nil {
					line[i] = "NULL"
					continue
				}
				line[i] = fmt.Sprint(v)
			}
			rows = append(rows, line)
		}
		rendered, err = pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
		if err != nil {
			return err
		}
		pterm.Fprintln(out, rendered)
		pterm.Fprintln(out, pterm.NewStyle(pterm.FgGray).Sprintf("%d of at most %d rows shown", len(res.Rows), previewFlags.limit))
		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func init() {
	rootCmd.AddCommand(previewCmd)

	f := previewCmd.Flags()
	f.StringVarP(&previewFlags.database, "output-database", "o", "", "SQLite file or libsql:// URL (default from config)")
	f.StringVarP(&previewFlags.table, "output-table", "t", "", "Table to preview")
	f.IntVarP(&previewFlags.limit, "limit", "n", 20, "Maximum number of rows to show")
	f.BoolVar(&previewFlags.asJSON, "json", false, "Print the schema and rows as JSON")
	f.StringVar(&previewFlags.authToken, "auth-token", "", "Auth token for a remote libSQL database")
	_ = previewCmd.MarkFlagRequired("output-table")
}
