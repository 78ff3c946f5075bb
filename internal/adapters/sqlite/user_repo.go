// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/sentinel/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userSelectCols = "id, username, password_hash, role, created_at"

// scanUser scans a user row into a UserRecord.
func scanUser(scanner interface {
	Scan(dest ...any) error
}) (*secondary.UserRecord, error) {
	var createdAt sql.NullString

	record := &secondary.UserRecord{}
	err := scanner.Scan(&record.ID, &record.Username, &record.PasswordHash, &record.Role, &createdAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.String

	return record, nil
}

// Create persists a new user and returns its generated id.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash, role string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)",
		username, passwordHash, role,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read user id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userSelectCols+" FROM users WHERE id = ?", id,
	)
	record, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return record, nil
}

// GetByUsername retrieves a user by its unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userSelectCols+" FROM users WHERE username = ?", username,
	)
	record, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return record, nil
}

// List retrieves all users ordered by id descending.
func (r *UserRepository) List(ctx context.Context) ([]*secondary.UserRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userSelectCols+" FROM users ORDER BY id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*secondary.UserRecord
	for rows.Next() {
		record, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, record)
	}
	return users, rows.Err()
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// CountByRole returns the number of users with the given role.
func (r *UserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE role = ?", role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}

// UpdateCredentials overwrites the password hash and role of the named user.
func (r *UserRepository) UpdateCredentials(ctx context.Context, username, passwordHash, role string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, role = ? WHERE username = ?",
		passwordHash, role, username,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update user credentials: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}
