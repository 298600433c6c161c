// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Driver names registered by the blank imports in open.go.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DriverName maps a configured database type to its database/sql driver.
func DriverName(databaseType string) (string, error) {
	switch databaseType {
	case "", "sqlite":
		return DriverSQLite, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	}
	return "", fmt.Errorf("unsupported database type %q", databaseType)
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Leads
CREATE TABLE IF NOT EXISTS lead (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    contact_method TEXT NOT NULL DEFAULT 'either' CHECK (contact_method IN ('email', 'phone', 'either')),
    ip_hash TEXT,
    user_agent TEXT,
    submitted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lead_submitted_at ON lead(submitted_at);
CREATE INDEX IF NOT EXISTS idx_lead_email ON lead(email);

-- Answers (value holds the JSON string or array)
CREATE TABLE IF NOT EXISTS lead_answer (
    lead_id TEXT NOT NULL REFERENCES lead(id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (lead_id, question_id)
);

CREATE INDEX IF NOT EXISTS idx_lead_answer_lead_id ON lead_answer(lead_id);
`
