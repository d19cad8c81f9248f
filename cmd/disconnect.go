// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"strings"

	"seedfast/xsvload/internal/config"
	"seedfast/xsvload/internal/dsn"
	"seedfast/xsvload/internal/keychain"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var disconnectHost string

// disconnectCmd removes stored auth tokens.
var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Remove saved libSQL auth tokens",
	Long: `The disconnect command removes auth tokens saved by connect from the OS
keychain. With --host only that host's token is removed; otherwise all of
them are. A configured default database on a removed host is cleared too.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			pterm.Println("❌ Secure storage is not available on this system")
			return err
		}

		host := strings.ToLower(strings.TrimSpace(disconnectHost))
		if host != "" {
			err = km.ClearDB(host)
		} else {
			err = km.ClearAll()
		}
		if err != nil {
			return err
		}

		c, err := config.Load()
		if err != nil {
			return err
		}
		if c.Database != "" && dsn.DetectDBType(c.Database) == dsn.DBTypeLibSQL {
			if host == "" || dsn.HostOf(c.Database) == host {
				c.Database = ""
				if err := config.Save(c); err != nil {
					return err
				}
			}
		}

		if host != "" {
			pterm.Println("✅ Auth token for " + host + " has been removed")
		} else {
			pterm.Println("✅ All saved auth tokens have been removed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
	disconnectCmd.Flags().StringVar(&disconnectHost, "host", "", "Only remove the token for this host")
}
