// Package sqlite mirrors harvested knowledge-base items into a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection, applies connection pragmas and
// creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// A harvest is written by a single transaction; one connection suffices.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, pragma := range db.pragmas() {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// pragmas returns the connection settings. WAL is not available for
// in-memory databases.
func (db *DB) pragmas() []string {
	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	// Deleting a harvest removes its items.
	return append(pragmas, "PRAGMA foreign_keys = ON")
}

// Path returns the database path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS harvests (
			id TEXT PRIMARY KEY,
			team_id TEXT NOT NULL,
			item_count INTEGER NOT NULL DEFAULT 0,
			harvested_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			harvest_id TEXT NOT NULL REFERENCES harvests(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			content_type TEXT NOT NULL,
			source_url TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			user_id TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_items_harvest_id ON items(harvest_id);
		CREATE INDEX IF NOT EXISTS idx_items_source_url ON items(source_url);
		CREATE INDEX IF NOT EXISTS idx_harvests_team_id ON harvests(team_id, harvested_at);
	`

	_, err := db.db.Exec(schema)
	return err
}
