// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"seedfast/xsvload/internal/sqlexec"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var dbinfoFlags struct {
	database  string
	authToken string
}

// dbinfoCmd shows where an output database resolves to, with secrets masked.
var dbinfoCmd = &cobra.Command{
	Use:   "dbinfo",
	Short: "Show the resolved output database and its tables",
	Long: `The dbinfo command resolves --output-database (or the configured default)
the same way import does and prints the driver, the masked connection string,
where the auth token came from, and the tables the database contains.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		database, err := databaseArg(dbinfoFlags.database)
		if err != nil {
			return err
		}
		target, source, err := resolveTarget(database, dbinfoFlags.authToken)
		if err != nil {
			return err
		}

		lines := []string{
			"type:   " + string(target.Type),
			"driver: " + target.Driver,
			"target: " + target.Display,
		}
		if target.Remote() {
			lines = append(lines, "host:   "+target.Host, "token:  "+string(source))
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		e, err := sqlexec.Open(ctx, target)
		if err != nil {
			lines = append(lines, "status: unreachable")
			printBox(out, lines)
			return err
		}
		defer e.Close()

		res, err := e.Query(ctx, "select name from sqlite_master where type = 'table' and name not like 'sqlite_%' order by name")
		if err != nil {
			return err
		}
		var tables []string
		for _, r := range res.Rows {
			tables = append(tables, fmt.Sprint(r[0]))
		}
		lines = append(lines, "status: ok", fmt.Sprintf("tables: %d", len(tables)))
		printBox(out, lines)

		if len(tables) > 0 {
			items := make([]pterm.BulletListItem, len(tables))
			for i, t := range tables {
				items[i] = pterm.BulletListItem{Level: 0, Text: t}
			}
			rendered, err := pterm.DefaultBulletList.WithItems(items).Srender()
			if err != nil {
				return err
			}
			pterm.Fprintln(out, rendered)
		}
		return nil
	},
}

func printBox(out io.Writer, lines []string) {
	box := pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Output Database")).
		WithPadding(1).
		Sprint(strings.Join(lines, "\n"))
	pterm.Fprintln(out, box)
}

func init() {
	rootCmd.AddCommand(dbinfoCmd)
	dbinfoCmd.Flags().StringVarP(&dbinfoFlags.database, "output-database", "o", "", "SQLite file or libsql:// URL (default from config)")
	dbinfoCmd.Flags().StringVar(&dbinfoFlags.authToken, "auth-token", "", "Auth token for a remote libSQL database")
}
