// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/council-ballot/cliparse"
)

// Open connects to the database named by cfg and verifies the connection.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	var driver string
	switch cfg.DatabaseType {
	case cliparse.DatabaseSQLite:
		driver = "sqlite"
	case cliparse.DatabasePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	conn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	// sqlite allows a single writer
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Statements run one at a time; both drivers accept this subset of SQL.
var schema = []string{
	// Candidate cache, refreshed from the election API per election
	`CREATE TABLE IF NOT EXISTS candidate (
		election_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		photo TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		activity INTEGER NOT NULL DEFAULT 0,
		field_of_activity TEXT NOT NULL DEFAULT '',
		biography TEXT NOT NULL DEFAULT '',
		work TEXT NOT NULL DEFAULT '',
		education TEXT NOT NULL DEFAULT '',
		facebook_url TEXT NOT NULL DEFAULT '',
		fetched_at TIMESTAMP NOT NULL,
		PRIMARY KEY (election_id, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_candidate_election_id ON candidate(election_id)`,

	// Local copy of ballots this client submitted successfully
	`CREATE TABLE IF NOT EXISTS vote_receipt (
		id TEXT PRIMARY KEY,
		election_id TEXT NOT NULL,
		voter_email TEXT NOT NULL,
		council_ids TEXT NOT NULL,
		executive_ids TEXT NOT NULL,
		submitted_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vote_receipt_voter ON vote_receipt(election_id, voter_email)`,
}
