package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Result reports the effect of a statement.
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// Executor is the statement surface the repository needs.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	QueryAll(ctx context.Context, query string, args ...any) ([]Row, error)
}

// Client is a thin wrapper over an embedded SQLite database.
type Client struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(dbPath string) (*Client, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// one writer, one process
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}

	return &Client{db: db}, nil
}

// Exec runs a statement that returns no rows.
func (c *Client) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, err
	}
	var r Result
	r.LastInsertID, _ = res.LastInsertId()
	r.RowsAffected, _ = res.RowsAffected()
	return r, nil
}

// QueryAll runs a query and collects every row.
func (c *Client) QueryAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Close closes the database.
func (c *Client) Close() error {
	return c.db.Close()
}
