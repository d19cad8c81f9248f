// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"seedfast/xsvload/internal/config"
	"seedfast/xsvload/internal/dsn"
	xerr "seedfast/xsvload/internal/errors"
	"seedfast/xsvload/internal/importer"
	"seedfast/xsvload/internal/keychain"
	"seedfast/xsvload/internal/sqlexec"
)

// tokenSource names where an auth token came from.
type tokenSource string

const (
	tokenNone     tokenSource = "none"
	tokenFlag     tokenSource = "--auth-token"
	tokenEnv      tokenSource = config.EnvAuthToken
	tokenKeychain tokenSource = "OS keychain"
)

// lookupToken finds the auth token for a remote database: flag, then
// environment, then the keychain entry for host.
func lookupToken(host, flag string, getenv func(string) string, load func(host string) (string, error)) (string, tokenSource) {
	if t := strings.TrimSpace(flag); t != "" {
		return t, tokenFlag
	}
	if t := strings.TrimSpace(getenv(config.EnvAuthToken)); t != "" {
		return t, tokenEnv
	}
	if host == "" || load == nil {
		return "", tokenNone
	}
	t, err := load(host)
	if err != nil {
		if !errors.Is(err, keychain.ErrNotFound) {
			slog.Debug("keychain lookup failed", "host", host, "error", err)
		}
		return "", tokenNone
	}
	return t, tokenKeychain
}

func keychainLoader(host string) (string, error) {
	km, err := keychain.GetManager()
	if err != nil {
		return "", err
	}
	return km.LoadDBToken(host)
}

// databaseArg returns the -o value, or the configured default.
func databaseArg(flag string) (string, error) {
	if db := strings.TrimSpace(flag); db != "" {
		return db, nil
	}
	if cfg.Database != "" {
		return cfg.Database, nil
	}
	return "", xerr.New(xerr.InvalidConfiguration, "an output database is required (--output-database)")
}

// resolveTarget turns the database argument into a connectable target,
// attaching an auth token for remote databases.
func resolveTarget(raw, tokenFlagValue string) (*dsn.Target, tokenSource, error) {
	if err := dsn.Validate(raw); err != nil {
		return nil, tokenNone, xerr.Wrap(xerr.InvalidConfiguration, "output database", err)
	}

	token, source := "", tokenNone
	if dsn.DetectDBType(raw) == dsn.DBTypeLibSQL {
		token, source = lookupToken(dsn.HostOf(raw), tokenFlagValue, os.Getenv, keychainLoader)
	}

	target, err := dsn.Resolve(raw, token)
	if err != nil {
		return nil, tokenNone, xerr.Wrap(xerr.InvalidConfiguration, "output database", err)
	}
	return target, source, nil
}

// sessionOpener opens a fresh pinned session on target for each call.
func sessionOpener(target *dsn.Target) importer.Opener {
	return func(ctx context.Context) (importer.Conn, error) {
		return sqlexec.OpenSession(ctx, target)
	}
}
