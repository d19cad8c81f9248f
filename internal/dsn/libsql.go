// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"net/url"
	"strings"

	"seedfast/xsvload/internal/logging"
)

// LibSQLResolver handles remote libSQL (Turso) targets.
type LibSQLResolver struct{}

// NewLibSQLResolver creates a new libSQL resolver
func NewLibSQLResolver() *LibSQLResolver {
	return &LibSQLResolver{}
}

// Resolve attaches token as the authToken query parameter unless the URL
// already carries one.
func (r *LibSQLResolver) Resolve(raw, token string) (*Target, error) {
	u, err := r.parse(raw)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	if q.Get("authToken") == "" && token != "" {
		q.Set("authToken", token)
		u.RawQuery = q.Encode()
	}

	dsn := u.String()
	return &Target{
		Type:     DBTypeLibSQL,
		Driver:   "libsql",
		DSN:      dsn,
		Host:     strings.ToLower(u.Hostname()),
		Display:  logging.Mask(dsn),
		Original: raw,
	}, nil
}

// Validate checks that the URL parses and names a host.
func (r *LibSQLResolver) Validate(raw string) error {
	_, err := r.parse(raw)
	return err
}

func (r *LibSQLResolver) parse(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, NewParseError(raw, "malformed URL", "format should be libsql://<database>.turso.io")
	}
	if u.Hostname() == "" {
		return nil, NewParseError(raw, "missing host", "format should be libsql://<database>.turso.io")
	}
	return u, nil
}

// HostOf returns the lower-cased host of a remote target URL, or "" when
// raw is not a remote URL.
func HostOf(raw string) string {
	if DetectDBType(raw) != DBTypeLibSQL {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
