// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"os"
	"path/filepath"
	"testing"

	xerr "seedfast/xsvload/internal/errors"
	"seedfast/xsvload/internal/sqlexec"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if c != Defaults() {
		t.Errorf("LoadFrom() = %+v, want defaults", c)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	want := Config{LogLevel: "debug", LogFormat: "json", Isolation: "exclusive", Database: "data.db"}
	if err := Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	p, _ := Path()
	info, err := os.Stat(p)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config permissions = %v, want 0600", info.Mode().Perm())
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(p, []byte(`{"isolation":"deferred"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFrom(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Isolation != "deferred" || c.LogLevel != "info" || c.LogFormat != "text" {
		t.Errorf("LoadFrom() = %+v", c)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:  "warn",
		EnvIsolation: " EXCLUSIVE ",
		EnvDatabase:  "libsql://db.example.io",
	}
	c := Defaults()
	c.ApplyEnv(func(k string) string { return env[k] })

	if c.LogLevel != "warn" || c.LogFormat != "text" || c.Isolation != "EXCLUSIVE" || c.Database != "libsql://db.example.io" {
		t.Errorf("ApplyEnv() = %+v", c)
	}
	level, err := c.IsolationLevel()
	if err != nil || level != sqlexec.Exclusive {
		t.Errorf("IsolationLevel() = %v, %v", level, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "json debug", mutate: func(c *Config) { c.LogFormat = "JSON"; c.LogLevel = "debug" }},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
		{name: "bad isolation", mutate: func(c *Config) { c.Isolation = "serializable" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Defaults()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				if !xerr.Is(err, xerr.InvalidConfiguration) {
					t.Errorf("Validate() error = %v, want invalid_configuration", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}
