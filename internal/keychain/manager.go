// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain stores remote database auth tokens in the OS credential
// store (macOS Keychain, Windows Credential Manager, or pass). Tokens are
// keyed by database host so one machine can hold credentials for several
// libSQL databases; nothing secret is ever written to the config file.
package keychain

import (
	"encoding/json"
	"errors"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// ErrNotFound is returned when no token is stored for a host.
var ErrNotFound = errors.New("no token stored for this host")

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "xsvload"

// KeyHosts holds the JSON list of hosts that have a stored token.
const KeyHosts = "db_hosts"

// store is the minimal key/value surface both backends provide.
type store interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// Manager provides thread-safe token storage.
type Manager struct {
	mu    sync.RWMutex
	store store
}

// NewManager creates a manager over the native credential store.
func NewManager() (*Manager, error) {
	// Try native security backend first on macOS
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{store: backend}, nil
		}
		// Fall through to keyring library if security command fails
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return newManager(ringStore{ring}), nil
}

func newManager(s store) *Manager {
	return &Manager{store: s}
}

// GetManager returns the global keychain manager instance, creating it on
// first use. A failed initialization is retried on the next call.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}
	return globalManager, nil
}

// openRing opens the OS keyring using native platform backends only.
// There is no file fallback.
func openRing() (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		// pass requires the 'pass' utility: brew install pass
		allowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	case "linux":
		allowedBackends = []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	default:
		return nil, errors.New("secure storage not supported on " + runtime.GOOS)
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends,
		PassPrefix:      ServiceName,
		WinCredPrefix:   ServiceName,
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. On macOS 26.0+, install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}
	return ring, nil
}

// ringStore adapts a keyring.Keyring to store.
type ringStore struct {
	ring keyring.Keyring
}

func (r ringStore) Set(key, value string) error {
	return r.ring.Set(keyring.Item{Key: key, Data: []byte(value)})
}

func (r ringStore) Get(key string) (string, error) {
	it, err := r.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(it.Data), nil
}

func (r ringStore) Delete(key string) error {
	err := r.ring.Remove(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

func tokenKey(host string) string {
	return "db_token:" + strings.ToLower(host)
}

// SaveDBToken stores the auth token for host.
func (m *Manager) SaveDBToken(host, token string) error {
	if host == "" {
		return errors.New("host is required")
	}
	if token == "" {
		return errors.New("token is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(tokenKey(host), token); err != nil {
		return err
	}
	hosts, err := m.hosts()
	if err != nil {
		return err
	}
	host = strings.ToLower(host)
	for _, h := range hosts {
		if h == host {
			return nil
		}
	}
	return m.saveHosts(append(hosts, host))
}

// LoadDBToken returns the token stored for host, or ErrNotFound.
func (m *Manager) LoadDBToken(host string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	token, err := m.store.Get(tokenKey(host))
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNotFound
	}
	return token, nil
}

// Hosts lists hosts with a stored token, sorted.
func (m *Manager) Hosts() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hosts()
}

// ClearDB removes the token for host. Removing an absent token is not an error.
func (m *Manager) ClearDB(host string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(tokenKey(host)); err != nil {
		return err
	}
	hosts, err := m.hosts()
	if err != nil {
		return err
	}
	host = strings.ToLower(host)
	kept := hosts[:0]
	for _, h := range hosts {
		if h != host {
			kept = append(kept, h)
		}
	}
	return m.saveHosts(kept)
}

// ClearAll removes every stored token.
func (m *Manager) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	hosts, err := m.hosts()
	if err != nil {
		return err
	}
	var errs []error
	for _, h := range hosts {
		errs = append(errs, m.store.Delete(tokenKey(h)))
	}
	errs = append(errs, m.store.Delete(KeyHosts))
	return errors.Join(errs...)
}

// hosts reads the host index. Callers hold m.mu.
func (m *Manager) hosts() ([]string, error) {
	raw, err := m.store.Get(KeyHosts)
	if errors.Is(err, ErrNotFound) || (err == nil && raw == "") {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var hosts []string
	if err := json.Unmarshal([]byte(raw), &hosts); err != nil {
		return nil, err
	}
	sort.Strings(hosts)
	return hosts, nil
}

func (m *Manager) saveHosts(hosts []string) error {
	if len(hosts) == 0 {
		return m.store.Delete(KeyHosts)
	}
	sort.Strings(hosts)
	b, err := json.Marshal(hosts)
	if err != nil {
		return err
	}
	return m.store.Set(KeyHosts, string(b))
}
