package driver

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Postgres adapts a *sql.DB opened with the "postgres" driver (lib/pq) to
// the Driver contract. Query calls are not serialized: *sql.DB may run
// several statements at once on pooled connections, and a new call does not
// cancel one still in flight. Each call's outcome goes back to its own
// caller; nothing here marks which one is the most recent.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres opens and pings a PostgreSQL connection. connStr is expected
// to already be a libpq keyword/value string (built by internal/config from
// the host/port that cmd/querycrafter's connect points at 127.0.0.1 when
// tunneled).
func OpenPostgres(connStr string) (*Postgres, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error { return p.db.Close() }

func (p *Postgres) LoadTables(ctx context.Context, search string) ([]Table, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT table_schema, table_name
		FROM information_schema.tables
		WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []Table
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.Schema, &t.Name); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tables = FilterTables(tables, search)
	SortTables(tables)
	return tables, nil
}

func (p *Postgres) LoadTableColumns(ctx context.Context, table, schema string) ([]Column, error) {
	if schema == "" {
		schema = "public"
	}
	rows, err := p.db.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_name = $1 AND table_schema = $2
		ORDER BY ordinal_position
	`, table, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var c Column
		var nullable string
		if err := rows.Scan(&c.Name, &c.DataType, &nullable); err != nil {
			return nil, err
		}
		c.IsNullable = strings.EqualFold(nullable, "yes")
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (p *Postgres) Query(ctx context.Context, text string) QueryOutcome {
	start := time.Now()
	rows, err := p.db.QueryContext(ctx, text)
	if err != nil {
		return QueryOutcome{Err: err}
	}
	result, err := ScanRows(rows)
	if err != nil {
		return QueryOutcome{Err: err}
	}
	elapsed := time.Since(start).Milliseconds()
	if elapsed <= 0 {
		elapsed = 1 // never record 0 for a query that actually ran (§4.5)
	}
	return QueryOutcome{Result: result, ExecutionTimeMS: elapsed}
}
