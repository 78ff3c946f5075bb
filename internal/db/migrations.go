package db

import (
	"database/sql"
	"fmt"
)

// columnMigration is one additive schema evolution: add a nullable column
// to an existing table if it is not already there.
type columnMigration struct {
	Table  string
	Column string
	DDL    string
}

// columnMigrations is the ordered list of evolutions. Each step is probed
// against the live table before mutating, so the whole list is safe to run
// on every process start regardless of how old the database is.
var columnMigrations = []columnMigration{
	{
		Table:  "it_tickets",
		Column: "subject",
		DDL:    "ALTER TABLE it_tickets ADD COLUMN subject TEXT",
	},
}

// EvolveSchema applies all pending column migrations. Idempotent: a column
// that already exists (fresh installs include everything) is skipped.
func EvolveSchema(database *sql.DB) error {
	for _, m := range columnMigrations {
		exists, err := columnExists(database, m.Table, m.Column)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", m.Table, err)
		}
		if exists {
			continue
		}
		if _, err := database.Exec(m.DDL); err != nil {
			return fmt.Errorf("failed to add %s.%s: %w", m.Table, m.Column, err)
		}
	}
	return nil
}

// columnExists reports whether the live table has the named column.
func columnExists(database *sql.DB, table, column string) (bool, error) {
	rows, err := database.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
