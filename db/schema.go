// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the journal database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	if dbType != TypeSQLite && dbType != TypePostgres {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}
	if dbType == TypeSQLite {
		// sqlite allows a single writer
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the journal.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The column types are understood by both sqlite and postgres.
// seq restarts at 1 with every process, so rows are keyed by run.
const schema = `
-- Notification log
CREATE TABLE IF NOT EXISTS ballot_event (
    id TEXT PRIMARY KEY,
    run_id TEXT NOT NULL,
    seq BIGINT NOT NULL,
    kind TEXT NOT NULL,
    principal TEXT,
    proposal_id BIGINT,
    old_phase TEXT,
    new_phase TEXT,
    occurred_at TIMESTAMP NOT NULL,
    UNIQUE (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_ballot_event_kind ON ballot_event(kind);
`
