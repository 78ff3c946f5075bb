package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/sentinel/internal/ports/secondary"
)

// TicketRepository implements secondary.TicketRepository with SQLite.
// All lookups, updates, and deletes key on the ticket_id business key.
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new SQLite ticket repository.
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketSelectCols = "id, ticket_id, priority, status, category, subject, description, created_date, assigned_to, resolved_date"

// scanTicket scans a ticket row into a TicketRecord.
func scanTicket(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TicketRecord, error) {
	var (
		category     sql.NullString
		subject      sql.NullString
		desc         sql.NullString
		createdDate  sql.NullString
		assignedTo   sql.NullString
		resolvedDate sql.NullString
	)

	record := &secondary.TicketRecord{}
	err := scanner.Scan(
		&record.ID, &record.TicketID, &record.Priority, &record.Status,
		&category, &subject, &desc, &createdDate, &assignedTo, &resolvedDate,
	)
	if err != nil {
		return nil, err
	}
	record.Category = category.String
	record.Subject = subject.String
	record.Description = desc.String
	record.CreatedDate = createdDate.String
	record.AssignedTo = assignedTo.String
	record.ResolvedDate = resolvedDate.String

	return record, nil
}

// Create persists a new ticket. A duplicate ticket_id is rejected by the
// unique constraint and surfaces as an error.
func (r *TicketRepository) Create(ctx context.Context, ticket *secondary.TicketRecord) (int64, error) {
	var assignedTo sql.NullString
	if ticket.AssignedTo != "" {
		assignedTo = sql.NullString{String: ticket.AssignedTo, Valid: true}
	}
	var resolvedDate sql.NullString
	if ticket.ResolvedDate != "" {
		resolvedDate = sql.NullString{String: ticket.ResolvedDate, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO it_tickets (ticket_id, priority, status, category, subject, description, created_date, assigned_to, resolved_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		ticket.TicketID, ticket.Priority, ticket.Status, ticket.Category,
		ticket.Subject, ticket.Description, ticket.CreatedDate, assignedTo, resolvedDate,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create ticket: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read ticket id: %w", err)
	}
	return id, nil
}

// GetByTicketID retrieves a ticket by its business key.
func (r *TicketRepository) GetByTicketID(ctx context.Context, ticketID string) (*secondary.TicketRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+ticketSelectCols+" FROM it_tickets WHERE ticket_id = ?", ticketID,
	)
	record, err := scanTicket(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return record, nil
}

// List retrieves all tickets ordered by id descending.
func (r *TicketRepository) List(ctx context.Context) ([]*secondary.TicketRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+ticketSelectCols+" FROM it_tickets ORDER BY id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*secondary.TicketRecord
	for rows.Next() {
		record, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, record)
	}
	return tickets, rows.Err()
}

// Count returns the total number of tickets.
func (r *TicketRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM it_tickets").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return count, nil
}

// Update applies the non-nil fields of patch to the ticket with the given
// business key. Column names come from a fixed list; only values are
// parameterized. An empty patch affects zero rows without a query.
func (r *TicketRepository) Update(ctx context.Context, ticketID string, patch secondary.TicketUpdate) (int64, error) {
	var (
		sets []string
		args []any
	)

	appendSet := func(col string, val *string) {
		if val == nil {
			return
		}
		sets = append(sets, col+" = ?")
		args = append(args, *val)
	}

	appendSet("priority", patch.Priority)
	appendSet("status", patch.Status)
	appendSet("category", patch.Category)
	appendSet("subject", patch.Subject)
	appendSet("description", patch.Description)
	appendSet("created_date", patch.CreatedDate)
	appendSet("assigned_to", patch.AssignedTo)
	appendSet("resolved_date", patch.ResolvedDate)

	if len(sets) == 0 {
		return 0, nil
	}

	args = append(args, ticketID)
	res, err := r.db.ExecContext(ctx,
		"UPDATE it_tickets SET "+strings.Join(sets, ", ")+" WHERE ticket_id = ?", args...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update ticket: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}

// Delete removes a ticket by business key. A missing key affects zero rows.
func (r *TicketRepository) Delete(ctx context.Context, ticketID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM it_tickets WHERE ticket_id = ?", ticketID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete ticket: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}
