// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"errors"
	"os"
	"time"

	"seedfast/xsvload/internal/config"
	"seedfast/xsvload/internal/dsn"
	"seedfast/xsvload/internal/keychain"
	"seedfast/xsvload/internal/logging"
	"seedfast/xsvload/internal/sqlexec"
	"seedfast/xsvload/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// connectCmd verifies a remote libSQL database and stores its token.
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Verify a remote libSQL database and save its auth token",
	Long: `The connect command prompts for a libSQL database URL and auth token, verifies
that the database answers, and stores the token in the OS keychain keyed by
host. The URL becomes the default --output-database.

Example URL: libsql://my-db-myorg.turso.io`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		promptText := "Enter libSQL database URL (e.g., libsql://my-db-myorg.turso.io): "
		rawURL, err := terminal.ReadLine(reader, promptText)
		if err != nil {
			return err
		}
		terminal.ClearPreviousLines(len(promptText) + len(rawURL))
		if rawURL == "" {
			return errors.New("database URL is required")
		}
		if dsn.DetectDBType(rawURL) != dsn.DBTypeLibSQL {
			pterm.Println("❌ Only remote libSQL databases need connect; local files are used directly with -o.")
			return errors.New("not a libSQL URL: " + logging.Mask(rawURL))
		}

		token, err := terminal.ReadSecret(reader, "Enter auth token: ")
		if err != nil {
			return err
		}
		if token == "" {
			return errors.New("auth token is required")
		}

		target, err := dsn.Resolve(rawURL, token)
		if err != nil {
			var parseErr *dsn.ParseError
			if errors.As(err, &parseErr) {
				pterm.Println("❌ " + parseErr.Error())
			}
			return err
		}

		startTime := time.Now()
		stopSpinner := startInlineSpinner(cmd.OutOrStdout(), "verifying connection", []string{"-", "\\", "|", "/"}, 100*time.Millisecond)

		ctxPing, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		e, err := sqlexec.Open(ctxPing, target)
		if err != nil {
			stopSpinner()
			pterm.Println("❌ Connection failed. Please check the URL, the token and your network connection.")
			return err
		}
		_ = e.Close()

		// keep the spinner visible long enough to read
		if elapsed := time.Since(startTime); elapsed < time.Second {
			time.Sleep(time.Second - elapsed)
		}
		stopSpinner()

		km, err := keychain.GetManager()
		if err != nil {
			pterm.Println("❌ Secure storage is not available on this system.")
			pterm.Println("   Connection verified but not saved. Pass the token with --auth-token or " + config.EnvAuthToken + ".")
			return err
		}
		if err := km.SaveDBToken(target.Host, token); err != nil {
			pterm.Println("❌ Failed to save the auth token securely.")
			return err
		}

		c, err := config.Load()
		if err != nil {
			return err
		}
		c.Database = rawURL
		if err := config.Save(c); err != nil {
			return err
		}

		pterm.Println("✅ Database connection verified and saved!")
		pterm.Println("   You're ready to run 'xsvload import -s FILE -t TABLE'")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
}
