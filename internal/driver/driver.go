// Package driver defines the contract the core state engine uses to talk to
// a single relational database connection, plus the two concrete
// implementations (PostgreSQL, SQLite) this workbench ships with.
package driver

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Type identifies which backend a connection string targets.
type Type int

const (
	PostgreSQL Type = iota
	SQLite
)

func (t Type) String() string {
	switch t {
	case PostgreSQL:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// Column is a schema column descriptor, lazily loaded and cached by name.
type Column struct {
	Name       string
	DataType   string
	IsNullable bool
}

// Table is a schema object descriptor. Columns is nil until LoadTableColumns
// has been called for it at least once.
type Table struct {
	Schema  string
	Name    string
	Columns map[string]Column
}

// QualifiedName renders "schema.name", or bare "name" when Schema is empty
// (SQLite has no schema concept worth surfacing).
func (t Table) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// ResultSet is a materialized query result: every row has the same arity as
// Headers (§3 invariant).
type ResultSet struct {
	Headers []string
	Rows    [][]string
}

func (r ResultSet) Valid() bool {
	for _, row := range r.Rows {
		if len(row) != len(r.Headers) {
			return false
		}
	}
	return true
}

// QueryOutcome is what a completed query produces: either a successful
// ResultSet, a reported execution time, or an error. ExecutionTimeMS is the
// driver-reported value when available; the caller falls back to wall clock
// when it is zero (§4.5).
type QueryOutcome struct {
	Result          ResultSet
	ExecutionTimeMS int64
	Err             error
}

// Driver is the contract §6 describes: load tables, load a table's columns,
// and run a parameterless query returning a materialized result.
type Driver interface {
	LoadTables(ctx context.Context, search string) ([]Table, error)
	LoadTableColumns(ctx context.Context, table, schema string) ([]Column, error)
	Query(ctx context.Context, text string) QueryOutcome
	Close() error
}

// SortTables orders tables by name, ascending, case-sensitively — matching
// the ordering the driver contract in §6 promises ("sorted by name").
func SortTables(tables []Table) {
	sort.Slice(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
}

// FilterTables keeps only tables whose name contains search, case-insensitive.
// An empty search keeps everything.
func FilterTables(tables []Table, search string) []Table {
	if search == "" {
		return tables
	}
	search = strings.ToLower(search)
	out := tables[:0:0]
	for _, t := range tables {
		if strings.Contains(strings.ToLower(t.Name), search) {
			out = append(out, t)
		}
	}
	return out
}

// Stringify centralizes the driver-value-to-display-string rule (§6, §9):
// NULL becomes the literal string "NULL"; []byte becomes "\x" followed by
// lowercase hex; []any (elements stringified recursively) and []string are
// comma-joined; everything else falls back to fmt.Sprintf("%v").
func Stringify(v any) string {
	if v == nil {
		return "NULL"
	}
	switch val := v.(type) {
	case []byte:
		return "\\x" + hex.EncodeToString(val)
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case sql.NullString:
		if !val.Valid {
			return "NULL"
		}
		return val.String
	case sql.NullInt64:
		if !val.Valid {
			return "NULL"
		}
		return fmt.Sprintf("%d", val.Int64)
	case sql.NullFloat64:
		if !val.Valid {
			return "NULL"
		}
		return fmt.Sprintf("%v", val.Float64)
	case sql.NullBool:
		if !val.Valid {
			return "NULL"
		}
		if val.Bool {
			return "true"
		}
		return "false"
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = Stringify(e)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(val, ",")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// StringifyRow converts a raw driver row (as returned by database/sql's
// Rows.Scan into []any via sql.RawBytes-free generic scanning) into the
// ResultSet row representation.
func StringifyRow(vals []any) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = Stringify(v)
	}
	return out
}

// ScanRows drains *sql.Rows into a ResultSet using generic any-scanning plus
// Stringify, the shape every backend's Query implementation shares.
func ScanRows(rows *sql.Rows) (ResultSet, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return ResultSet{}, err
	}

	result := ResultSet{Headers: cols}
	holders := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range holders {
		ptrs[i] = &holders[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return ResultSet{}, err
		}
		result.Rows = append(result.Rows, StringifyRow(holders))
	}
	if err := rows.Err(); err != nil {
		return ResultSet{}, err
	}
	return result, nil
}
