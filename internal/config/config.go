// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; auth tokens go to the OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	xerr "seedfast/xsvload/internal/errors"
	"seedfast/xsvload/internal/sqlexec"
	"seedfast/xsvload/internal/xdg"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvLogLevel  = "XSVLOAD_LOG_LEVEL"
	EnvLogFormat = "XSVLOAD_LOG_FORMAT"
	EnvIsolation = "XSVLOAD_ISOLATION"
	EnvDatabase  = "XSVLOAD_DATABASE"
	EnvAuthToken = "XSVLOAD_AUTH_TOKEN"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
	// Isolation is the default BEGIN mode for imports.
	Isolation string `json:"isolation"`
	// Database is the default output database, used when -o is omitted.
	Database string `json:"database,omitempty"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Isolation: "immediate",
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Defaults(), err
	}
	return LoadFrom(p)
}

// LoadFrom reads the config file at p. Fields absent from the file keep
// their default values.
func LoadFrom(p string) (Config, error) {
	c := Defaults()
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", p, err)
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(p, c)
}

// SaveTo writes c to p with 0600 permissions.
func SaveTo(p string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// LoadDotEnv loads KEY=value pairs from .env in the working directory into
// the process environment. Variables already set win. A missing file is
// not an error.
func LoadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv overlays XSVLOAD_* variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFormat)); v != "" {
		c.LogFormat = v
	}
	if v := strings.TrimSpace(getenv(EnvIsolation)); v != "" {
		c.Isolation = v
	}
	if v := strings.TrimSpace(getenv(EnvDatabase)); v != "" {
		c.Database = v
	}
}

// Validate rejects unknown log levels, log formats and isolation levels.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return xerr.Newf(xerr.InvalidConfiguration, "log_level %q: expected debug, info, warn or error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return xerr.Newf(xerr.InvalidConfiguration, "log_format %q: expected text or json", c.LogFormat)
	}
	if _, err := c.IsolationLevel(); err != nil {
		return err
	}
	return nil
}

// IsolationLevel parses the configured isolation level.
func (c Config) IsolationLevel() (sqlexec.Isolation, error) {
	return sqlexec.ParseIsolation(c.Isolation)
}
