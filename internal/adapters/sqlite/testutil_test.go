// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema; do not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/sentinel/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedUser inserts a test user and returns its id.
func seedUser(t *testing.T, db *sql.DB, username, role string) int64 {
	t.Helper()
	if username == "" {
		username = "alice"
	}
	if role == "" {
		role = "user"
	}
	res, err := db.Exec(
		"INSERT INTO users (username, password_hash, role) VALUES (?, 'x', ?)",
		username, role,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// seedTicket inserts a test ticket and returns its business key.
func seedTicket(t *testing.T, db *sql.DB, ticketID, priority, status string) string {
	t.Helper()
	if ticketID == "" {
		ticketID = "TCK-001"
	}
	if priority == "" {
		priority = "Medium"
	}
	if status == "" {
		status = "Open"
	}
	_, err := db.Exec(
		"INSERT INTO it_tickets (ticket_id, priority, status, description) VALUES (?, ?, ?, 'seed ticket')",
		ticketID, priority, status,
	)
	if err != nil {
		t.Fatalf("failed to seed ticket: %v", err)
	}
	return ticketID
}

// seedIncident inserts a test incident and returns its id.
func seedIncident(t *testing.T, db *sql.DB, severity, status string) int64 {
	t.Helper()
	if severity == "" {
		severity = "Low"
	}
	if status == "" {
		status = "Open"
	}
	res, err := db.Exec(
		"INSERT INTO cyber_incidents (date, incident_type, severity, status, description) VALUES ('2024-01-01', 'Phishing', ?, ?, 'seed incident')",
		severity, status,
	)
	if err != nil {
		t.Fatalf("failed to seed incident: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}
