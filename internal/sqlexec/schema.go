// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
)

// Column describes one column as reported by PRAGMA table_info.
type Column struct {
	CID        int64  `json:"cid"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"not_null"`
	DefaultVal any    `json:"default,omitempty"`
	PK         bool   `json:"pk"`
}

// SchemaInfo holds information about table structure.
type SchemaInfo struct {
	// TableName is the table as passed to the inspector
	TableName string
	// Columns lists columns in declaration order
	Columns []Column
}

// ColumnNames returns column names in declaration order.
func (si *SchemaInfo) ColumnNames() []string {
	names := make([]string, len(si.Columns))
	for i, c := range si.Columns {
		names[i] = c.Name
	}
	return names
}

// SchemaInspector provides table inspection with caching. Tables that do
// not exist are not cached.
type SchemaInspector struct {
	db *sql.DB
	// cache stores schema information keyed by table name
	cache map[string]*SchemaInfo
	// mu protects concurrent access to the cache
	mu sync.RWMutex
}

// NewSchemaInspector creates a new SchemaInspector over db.
func NewSchemaInspector(db *sql.DB) *SchemaInspector {
	return &SchemaInspector{
		db:    db,
		cache: make(map[string]*SchemaInfo),
	}
}

// GetSchemaInfo returns the columns of tableName. A missing table yields
// (nil, nil).
func (si *SchemaInspector) GetSchemaInfo(ctx context.Context, tableName string) (*SchemaInfo, error) {
	si.mu.RLock()
	if info, exists := si.cache[tableName]; exists {
		si.mu.RUnlock()
		return info, nil
	}
	si.mu.RUnlock()

	rows, err := si.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(tableName)))
	if err != nil {
		return nil, fmt.Errorf("failed to get table info: %w", err)
	}
	defer rows.Close()

	info := &SchemaInfo{TableName: tableName}
	for rows.Next() {
		var (
			col     Column
			notNull int64
			pk      int64
		)
		if err := rows.Scan(&col.CID, &col.Name, &col.Type, &notNull, &col.DefaultVal, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}
		col.NotNull = notNull != 0
		col.PK = pk != 0
		info.Columns = append(info.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column rows: %w", err)
	}
	if len(info.Columns) == 0 {
		return nil, nil
	}

	si.mu.Lock()
	si.cache[tableName] = info
	si.mu.Unlock()
	return info, nil
}

// quoteIdent wraps name in double quotes for use as an identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
