// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/99designs/keyring"
)

func newTestManager() *Manager {
	return newManager(ringStore{keyring.NewArrayKeyring(nil)})
}

func TestDBTokens(t *testing.T) {
	m := newTestManager()

	if _, err := m.LoadDBToken("db.turso.io"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LoadDBToken() on empty store error = %v, want ErrNotFound", err)
	}

	if err := m.SaveDBToken("DB.turso.io", "tok-1"); err != nil {
		t.Fatal(err)
	}
	if err := m.SaveDBToken("other.turso.io", "tok-2"); err != nil {
		t.Fatal(err)
	}
	if err := m.SaveDBToken("db.turso.io", "tok-3"); err != nil {
		t.Fatal(err)
	}

	got, err := m.LoadDBToken("db.turso.io")
	if err != nil || got != "tok-3" {
		t.Errorf("LoadDBToken() = %q, %v; want tok-3", got, err)
	}

	hosts, err := m.Hosts()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"db.turso.io", "other.turso.io"}; !reflect.DeepEqual(hosts, want) {
		t.Errorf("Hosts() = %v, want %v", hosts, want)
	}

	if err := m.ClearDB("db.turso.io"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.LoadDBToken("db.turso.io"); !errors.Is(err, ErrNotFound) {
		t.Errorf("token still present after ClearDB: %v", err)
	}
	if hosts, _ := m.Hosts(); !reflect.DeepEqual(hosts, []string{"other.turso.io"}) {
		t.Errorf("Hosts() after ClearDB = %v", hosts)
	}

	if err := m.ClearAll(); err != nil {
		t.Fatal(err)
	}
	if hosts, _ := m.Hosts(); len(hosts) != 0 {
		t.Errorf("Hosts() after ClearAll = %v", hosts)
	}
}

func TestSaveDBTokenValidation(t *testing.T) {
	m := newTestManager()
	if err := m.SaveDBToken("", "x"); err == nil {
		t.Error("expected error for empty host")
	}
	if err := m.SaveDBToken("h", ""); err == nil {
		t.Error("expected error for empty token")
	}
	if err := m.ClearDB("never-saved"); err != nil {
		t.Errorf("ClearDB() on unknown host = %v", err)
	}
}
