// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for xsvload. It implements
// the import, preview and credential subcommands using the Cobra CLI
// framework and renders progress with pterm.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"seedfast/xsvload/internal/config"
	"seedfast/xsvload/internal/dsn"
	"seedfast/xsvload/internal/logging"
	"seedfast/xsvload/internal/sqlexec"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
	verbose     bool
	logLevel    string
	logFormat   string

	// cfg is the effective configuration, set by PersistentPreRunE.
	cfg = config.Defaults()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "xsvload",
	Short: "Load csv, tsv and psv files into SQLite and libSQL tables",
	Long: `xsvload imports one delimited text file into one database table inside a
single transaction. The delimiter follows the file extension (.csv, .tsv,
.psv). The table can be created from the header row or from an explicit
CREATE TABLE statement; on any failure nothing is written.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			return printVersion(cmd)
		}
		return cmd.Help()
	},
}

// setup loads .env, the config file and XSVLOAD_* overrides, applies the
// logging flags and configures slog on stderr.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.ApplyEnv(os.Getenv)

	if cmd.Flags().Changed("log-level") {
		c.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		c.LogFormat = logFormat
	}
	if verbose {
		c.LogLevel = "debug"
	}
	if err := c.Validate(); err != nil {
		return err
	}

	logging.Setup(c.LogLevel, c.LogFormat, os.Stderr)
	cfg = c
	return nil
}

func printVersion(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "xsvload %s\n", Version)

	target, err := dsn.Resolve(":memory:", "")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	e, err := sqlexec.Open(ctx, target)
	if err != nil {
		return err
	}
	defer e.Close()
	res, err := e.Query(ctx, "select sqlite_version()")
	if err == nil && len(res.Rows) == 1 {
		fmt.Fprintf(out, "sqlite %v\n", res.Rows[0][0])
	}
	return nil
}

// reportedError marks an error already shown to the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Execute runs the CLI application. Any returned error exits with status 1.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, logging.PresentError("", err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show xsvload and SQLite version information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and show every import stage")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (default from config)")
}
