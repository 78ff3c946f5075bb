package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/sentinel/internal/ports/secondary"
)

// IncidentRepository implements secondary.IncidentRepository with SQLite.
type IncidentRepository struct {
	db *sql.DB
}

// NewIncidentRepository creates a new SQLite incident repository.
func NewIncidentRepository(db *sql.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

const incidentSelectCols = "id, date, incident_type, severity, status, description, reported_by"

// scanIncident scans an incident row into an IncidentRecord.
func scanIncident(scanner interface {
	Scan(dest ...any) error
}) (*secondary.IncidentRecord, error) {
	var (
		desc       sql.NullString
		reportedBy sql.NullInt64
	)

	record := &secondary.IncidentRecord{}
	err := scanner.Scan(
		&record.ID, &record.Date, &record.IncidentType, &record.Severity,
		&record.Status, &desc, &reportedBy,
	)
	if err != nil {
		return nil, err
	}
	record.Description = desc.String
	record.ReportedBy = reportedBy.Int64

	return record, nil
}

func incidentInsertArgs(incident *secondary.IncidentRecord) []any {
	var reportedBy sql.NullInt64
	if incident.ReportedBy != 0 {
		reportedBy = sql.NullInt64{Int64: incident.ReportedBy, Valid: true}
	}
	return []any{
		incident.Date, incident.IncidentType, incident.Severity,
		incident.Status, incident.Description, reportedBy,
	}
}

// Create persists a new incident and returns its generated id.
func (r *IncidentRepository) Create(ctx context.Context, incident *secondary.IncidentRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO cyber_incidents (date, incident_type, severity, status, description, reported_by) VALUES (?, ?, ?, ?, ?, ?)",
		incidentInsertArgs(incident)...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create incident: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read incident id: %w", err)
	}
	return id, nil
}

// GetByID retrieves an incident by id.
func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*secondary.IncidentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+incidentSelectCols+" FROM cyber_incidents WHERE id = ?", id,
	)
	record, err := scanIncident(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get incident: %w", err)
	}
	return record, nil
}

// List retrieves all incidents ordered by id descending.
func (r *IncidentRepository) List(ctx context.Context) ([]*secondary.IncidentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+incidentSelectCols+" FROM cyber_incidents ORDER BY id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	var incidents []*secondary.IncidentRecord
	for rows.Next() {
		record, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		incidents = append(incidents, record)
	}
	return incidents, rows.Err()
}

// Count returns the total number of incidents.
func (r *IncidentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cyber_incidents").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count incidents: %w", err)
	}
	return count, nil
}

// Update applies the non-nil fields of patch to the incident with the
// given id. Column names come from a fixed list; only values are
// parameterized. An empty patch affects zero rows without a query.
func (r *IncidentRepository) Update(ctx context.Context, id int64, patch secondary.IncidentUpdate) (int64, error) {
	var (
		sets []string
		args []any
	)

	appendSet := func(col string, val any) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}

	if patch.Date != nil {
		appendSet("date", *patch.Date)
	}
	if patch.IncidentType != nil {
		appendSet("incident_type", *patch.IncidentType)
	}
	if patch.Severity != nil {
		appendSet("severity", *patch.Severity)
	}
	if patch.Status != nil {
		appendSet("status", *patch.Status)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.ReportedBy != nil {
		appendSet("reported_by", *patch.ReportedBy)
	}

	if len(sets) == 0 {
		return 0, nil
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE cyber_incidents SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update incident: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}

// Delete removes an incident. A missing id affects zero rows.
func (r *IncidentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cyber_incidents WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete incident: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}
