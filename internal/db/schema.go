package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database layout. All tests
// load it via GetSchemaSQL() instead of hardcoding CREATE TABLE statements,
// so repository code that references a missing column fails immediately
// with "no such column" rather than drifting.
//
// Older databases created before the subject column existed are brought up
// to date by EvolveSchema, not by editing this constant retroactively.
const SchemaSQL = `
-- Users (authentication accounts; password_hash is a bcrypt hash)
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('admin', 'user')) DEFAULT 'user',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Cyber incidents (manual entry or bulk import)
CREATE TABLE IF NOT EXISTS cyber_incidents (
	id INTEGER PRIMARY KEY,
	date TEXT NOT NULL,
	incident_type TEXT NOT NULL,
	severity TEXT NOT NULL CHECK(severity IN ('Low', 'Medium', 'High')),
	status TEXT NOT NULL CHECK(status IN ('Open', 'In Progress', 'Resolved', 'Closed')) DEFAULT 'Open',
	description TEXT,
	reported_by INTEGER,
	FOREIGN KEY (reported_by) REFERENCES users(id)
);

-- IT tickets (ticket_id is the caller-facing business key)
CREATE TABLE IF NOT EXISTS it_tickets (
	id INTEGER PRIMARY KEY,
	ticket_id TEXT NOT NULL UNIQUE,
	priority TEXT NOT NULL CHECK(priority IN ('Low', 'Medium', 'High')),
	status TEXT NOT NULL CHECK(status IN ('Open', 'In Progress', 'Resolved', 'Closed')) DEFAULT 'Open',
	category TEXT,
	subject TEXT,
	description TEXT,
	created_date TEXT,
	assigned_to TEXT,
	resolved_date TEXT
);

-- Dataset metadata (append-only catalog of imported datasets)
CREATE TABLE IF NOT EXISTS datasets_metadata (
	id INTEGER PRIMARY KEY,
	dataset_name TEXT NOT NULL,
	category TEXT,
	source TEXT,
	last_updated TEXT,
	record_count INTEGER NOT NULL DEFAULT 0 CHECK(record_count >= 0),
	file_size_mb REAL NOT NULL DEFAULT 0 CHECK(file_size_mb >= 0)
);
`

// InitSchema creates all tables if absent. Safe to run on every start.
func InitSchema(database *sql.DB) error {
	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
