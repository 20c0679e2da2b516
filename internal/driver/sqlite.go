package driver

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite adapts a *sql.DB opened with the "sqlite3" driver (mattn/go-sqlite3)
// to the Driver contract.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens and pings a SQLite database file.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) LoadTables(ctx context.Context, search string) ([]Table, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []Table
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, Table{Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tables = FilterTables(tables, search)
	SortTables(tables)
	return tables, nil
}

func (s *SQLite) LoadTableColumns(ctx context.Context, table, schema string) ([]Column, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q)`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var cid int
		var name, ctype string
		var notNull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, Column{Name: name, DataType: ctype, IsNullable: notNull == 0})
	}
	return cols, rows.Err()
}

func (s *SQLite) Query(ctx context.Context, text string) QueryOutcome {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, text)
	if err != nil {
		return QueryOutcome{Err: err}
	}
	result, err := ScanRows(rows)
	if err != nil {
		return QueryOutcome{Err: err}
	}
	elapsed := time.Since(start).Milliseconds()
	if elapsed <= 0 {
		elapsed = 1
	}
	return QueryOutcome{Result: result, ExecutionTimeMS: elapsed}
}
