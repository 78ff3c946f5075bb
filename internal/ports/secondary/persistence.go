// Package secondary defines the secondary ports (driven adapters) for the
// application: the interfaces through which it reaches persistent storage.
package secondary

import "context"

// UserRepository defines the secondary port for user persistence.
// Users are never hard-deleted in the current scope.
type UserRepository interface {
	// Create persists a new user and returns its generated id.
	// A duplicate username surfaces as an error.
	Create(ctx context.Context, username, passwordHash, role string) (int64, error)

	// GetByID retrieves a user by id. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id int64) (*UserRecord, error)

	// GetByUsername retrieves a user by its unique username.
	// Returns (nil, nil) when absent.
	GetByUsername(ctx context.Context, username string) (*UserRecord, error)

	// List retrieves all users ordered by id descending.
	List(ctx context.Context) ([]*UserRecord, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int, error)

	// CountByRole returns the number of users with the given role.
	CountByRole(ctx context.Context, role string) (int, error)

	// UpdateCredentials overwrites the password hash and role of the named
	// user. Returns rows affected (0 when the user does not exist).
	UpdateCredentials(ctx context.Context, username, passwordHash, role string) (int64, error)
}

// UserRecord represents a user as stored in persistence.
type UserRecord struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    string
}

// IncidentRepository defines the secondary port for incident persistence.
type IncidentRepository interface {
	// Create persists a new incident and returns its generated id.
	Create(ctx context.Context, incident *IncidentRecord) (int64, error)

	// GetByID retrieves an incident by id. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id int64) (*IncidentRecord, error)

	// List retrieves all incidents ordered by id descending.
	List(ctx context.Context) ([]*IncidentRecord, error)

	// Count returns the total number of incidents.
	Count(ctx context.Context) (int, error)

	// Update applies the non-nil fields of patch to the incident with the
	// given id. Returns rows affected; an empty patch affects zero rows
	// without touching storage.
	Update(ctx context.Context, id int64, patch IncidentUpdate) (int64, error)

	// Delete removes an incident. Returns rows affected (0 when absent).
	Delete(ctx context.Context, id int64) (int64, error)
}

// IncidentRecord represents a cyber incident as stored in persistence.
// ReportedBy is 0 when no reporter is recorded.
type IncidentRecord struct {
	ID           int64
	Date         string
	IncidentType string
	Severity     string
	Status       string
	Description  string
	ReportedBy   int64
}

// IncidentUpdate is a partial-update patch: only non-nil fields are written.
type IncidentUpdate struct {
	Date         *string
	IncidentType *string
	Severity     *string
	Status       *string
	Description  *string
	ReportedBy   *int64
}

// TicketRepository defines the secondary port for ticket persistence.
// Lookup, update, and delete operate on the ticket_id business key, never
// the internal numeric id.
type TicketRepository interface {
	// Create persists a new ticket and returns its generated numeric id.
	// A duplicate ticket_id surfaces as an error.
	Create(ctx context.Context, ticket *TicketRecord) (int64, error)

	// GetByTicketID retrieves a ticket by its business key.
	// Returns (nil, nil) when absent.
	GetByTicketID(ctx context.Context, ticketID string) (*TicketRecord, error)

	// List retrieves all tickets ordered by id descending.
	List(ctx context.Context) ([]*TicketRecord, error)

	// Count returns the total number of tickets.
	Count(ctx context.Context) (int, error)

	// Update applies the non-nil fields of patch to the ticket with the
	// given business key. Returns rows affected; an empty patch affects
	// zero rows without touching storage.
	Update(ctx context.Context, ticketID string, patch TicketUpdate) (int64, error)

	// Delete removes a ticket by business key. Returns rows affected.
	Delete(ctx context.Context, ticketID string) (int64, error)
}

// TicketRecord represents an IT ticket as stored in persistence.
type TicketRecord struct {
	ID           int64
	TicketID     string
	Priority     string
	Status       string
	Category     string
	Subject      string
	Description  string
	CreatedDate  string
	AssignedTo   string
	ResolvedDate string
}

// TicketUpdate is a partial-update patch: only non-nil fields are written.
type TicketUpdate struct {
	Priority     *string
	Status       *string
	Category     *string
	Subject      *string
	Description  *string
	CreatedDate  *string
	AssignedTo   *string
	ResolvedDate *string
}

// DatasetRepository defines the secondary port for dataset metadata.
// Append-only: no update or delete is surfaced.
type DatasetRepository interface {
	// Create persists a new dataset metadata row and returns its id.
	Create(ctx context.Context, dataset *DatasetRecord) (int64, error)

	// List retrieves all dataset metadata ordered by id descending.
	List(ctx context.Context) ([]*DatasetRecord, error)

	// Count returns the total number of dataset metadata rows.
	Count(ctx context.Context) (int, error)
}

// DatasetRecord represents dataset metadata as stored in persistence.
type DatasetRecord struct {
	ID          int64
	DatasetName string
	Category    string
	Source      string
	LastUpdated string
	RecordCount int64
	FileSizeMB  float64
}
