package app

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedRow is returned when a bulk-import line cannot be parsed and
// the entity's policy is to abort the whole call (incidents only; the other
// importers skip bad rows and continue).
var ErrMalformedRow = errors.New("malformed import row")

// ImportService performs the one-time bulk imports from delimited text
// files. Each migration runs in a single transaction: the empty-table
// guard, every insert, and the final commit share one unit of work, so a
// call either lands its batch or (incident parse failure) nothing.
//
// The guard is approximate: it only checks that the table is currently
// non-empty, so an emptied table re-imports on the next run.
type ImportService struct {
	db *sql.DB
}

// NewImportService creates a new ImportService on the shared database.
func NewImportService(db *sql.DB) *ImportService {
	return &ImportService{db: db}
}

// MigrateUsersFromFile imports users from a delimited file with lines of
// the form "username,password_hash[,role]". The password field must
// already be a one-way hash. Returns the number of rows inserted.
func (s *ImportService) MigrateUsersFromFile(ctx context.Context, path string) (int, error) {
	return s.migrate(ctx, path, "users", func(tx *sql.Tx, fields []string) (bool, error) {
		if len(fields) < 2 {
			return false, nil
		}
		role := RoleUser
		if len(fields) > 2 && fields[2] != "" {
			role = fields[2]
		}
		res, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO users (username, password_hash, role) VALUES (?, ?, ?)",
			fields[0], fields[1], role,
		)
		if err != nil {
			log.Printf("skipping user %q: %v", fields[0], err)
			return false, nil
		}
		affected, _ := res.RowsAffected()
		return affected > 0, nil
	})
}

// MigrateIncidentsFromFile imports incidents from a delimited file with
// lines of the form
// "incident_id,timestamp,severity,category,status,description".
// A line with the wrong field count aborts the call with ErrMalformedRow
// and commits nothing.
func (s *ImportService) MigrateIncidentsFromFile(ctx context.Context, path string) (int, error) {
	return s.migrate(ctx, path, "cyber_incidents", func(tx *sql.Tx, fields []string) (bool, error) {
		if len(fields) != 6 {
			return false, fmt.Errorf("%w: expected 6 fields, got %d", ErrMalformedRow, len(fields))
		}
		// Source incident_id is discarded; the table assigns its own id.
		timestamp, severity, category, status, description := fields[1], fields[2], fields[3], fields[4], fields[5]
		res, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO cyber_incidents (date, incident_type, severity, status, description) VALUES (?, ?, ?, ?, ?)",
			timestamp, category, severity, status, description,
		)
		if err != nil {
			log.Printf("skipping incident row: %v", err)
			return false, nil
		}
		affected, _ := res.RowsAffected()
		return affected > 0, nil
	})
}

// MigrateTicketsFromFile imports tickets from a delimited file with lines
// of the form "ticket_id,priority,description,status,assigned_to,
// created_at,resolution_time_hours". Rows without exactly 7 fields are
// skipped; a duplicate ticket_id is logged and skipped.
func (s *ImportService) MigrateTicketsFromFile(ctx context.Context, path string) (int, error) {
	return s.migrate(ctx, path, "it_tickets", func(tx *sql.Tx, fields []string) (bool, error) {
		if len(fields) != 7 {
			return false, nil
		}
		res, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO it_tickets (ticket_id, priority, description, status, assigned_to, created_date, resolved_date) VALUES (?, ?, ?, ?, ?, ?, ?)",
			fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6],
		)
		if err != nil {
			log.Printf("skipping ticket %q: %v", fields[0], err)
			return false, nil
		}
		affected, _ := res.RowsAffected()
		return affected > 0, nil
	})
}

// MigrateDatasetsFromFile imports dataset metadata from a delimited file
// with lines of the form
// "dataset_id,name,rows,columns,uploaded_by,upload_date".
// Source columns map loosely onto the table: uploaded_by becomes the
// category, the source is fixed to "CSV Import", and the file size is
// approximated from the column count.
func (s *ImportService) MigrateDatasetsFromFile(ctx context.Context, path string) (int, error) {
	return s.migrate(ctx, path, "datasets_metadata", func(tx *sql.Tx, fields []string) (bool, error) {
		if len(fields) < 6 {
			return false, nil
		}
		name, rows, columns, uploadedBy, uploadDate := fields[1], fields[2], fields[3], fields[4], fields[5]

		var recordCount int64
		if n, err := strconv.ParseInt(rows, 10, 64); err == nil && n >= 0 {
			recordCount = n
		}
		var fileSizeMB float64
		if n, err := strconv.ParseInt(columns, 10, 64); err == nil && n >= 0 {
			fileSizeMB = float64(n) / 1000
		}

		res, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO datasets_metadata (dataset_name, category, source, last_updated, record_count, file_size_mb) VALUES (?, ?, ?, ?, ?, ?)",
			name, uploadedBy, "CSV Import", uploadDate, recordCount, fileSizeMB,
		)
		if err != nil {
			log.Printf("skipping dataset %q: %v", name, err)
			return false, nil
		}
		affected, _ := res.RowsAffected()
		return affected > 0, nil
	})
}

// insertRow inserts one parsed line. It reports whether a row landed; a
// returned error aborts the whole migration call.
type insertRow func(tx *sql.Tx, fields []string) (bool, error)

// migrate runs one bulk import: empty-table guard, header skip, per-line
// parse and insert, single commit.
func (s *ImportService) migrate(ctx context.Context, path, table string, insert insertRow) (n int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var count int
	if err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	if count > 0 {
		// Already migrated (approximately: the table is merely non-empty).
		return 0, tx.Commit()
	}

	f, openErr := os.Open(path)
	if openErr != nil {
		if os.IsNotExist(openErr) {
			log.Printf("no import file at %s, skipping %s migration", path, table)
			return 0, tx.Commit()
		}
		err = fmt.Errorf("failed to open %s: %w", path, openErr)
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	header := true
	inserted := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if header {
			header = false
			continue
		}
		if line == "" {
			continue
		}

		ok, rowErr := insert(tx, splitFields(line))
		if rowErr != nil {
			err = rowErr
			return 0, err
		}
		if ok {
			inserted++
		}
	}
	if scanErr := scanner.Err(); scanErr != nil {
		err = fmt.Errorf("failed to read %s: %w", path, scanErr)
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit %s import: %w", table, err)
	}
	log.Printf("migrated %d rows into %s from %s", inserted, table, path)
	return inserted, nil
}

// splitFields splits a source line on commas. There is no quoting or
// escaping support; a field wrapped in a matched pair of double quotes is
// merely unwrapped. Interior whitespace belongs to the field (only the
// line as a whole gets trimmed, in migrate).
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		if len(f) >= 2 && strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`) {
			f = f[1 : len(f)-1]
		}
		fields[i] = f
	}
	return fields
}
