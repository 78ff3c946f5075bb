// Package app contains the application services that sit between the CLI
// and the persistence adapters.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/sentinel/internal/ports/secondary"
)

// Default administrator credentials used by EnsureDefaultAdmin.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned on a failed login. The same error
	// covers unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService implements registration, login, and the first-run admin
// bootstrap on top of the user repository.
type UserService struct {
	users secondary.UserRepository

	// bootstrapAdmin gates EnsureDefaultAdmin. When false the startup
	// sequence never creates or resets the default admin account.
	bootstrapAdmin bool
}

// NewUserService creates a new UserService with injected dependencies.
func NewUserService(users secondary.UserRepository, bootstrapAdmin bool) *UserService {
	return &UserService{users: users, bootstrapAdmin: bootstrapAdmin}
}

// Register creates a new user with a bcrypt-hashed password.
// Role defaults to "user" when empty.
func (s *UserService) Register(ctx context.Context, username, password, role string) (*secondary.UserRecord, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	if role == "" {
		role = RoleUser
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.users.Create(ctx, username, string(hash), role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &secondary.UserRecord{ID: id, Username: username, Role: role}, nil
}

// Login verifies the password against the stored bcrypt hash and returns
// the matching user.
func (s *UserService) Login(ctx context.Context, username, password string) (*secondary.UserRecord, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ListUsers returns all users, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]*secondary.UserRecord, error) {
	return s.users.List(ctx)
}

// EnsureDefaultAdmin guarantees at least one admin account exists.
//
// When no admin is present it creates the default admin, or, if a non-admin
// user already holds the default username, resets that user's password to
// the default and promotes it to admin. The reset is deliberate and
// logged; disable via the bootstrap_admin config flag to opt out.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context) error {
	if !s.bootstrapAdmin {
		log.Printf("admin bootstrap disabled by config, skipping")
		return nil
	}

	admins, err := s.users.CountByRole(ctx, RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if admins > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	existing, err := s.users.GetByUsername(ctx, DefaultAdminUsername)
	if err != nil {
		return fmt.Errorf("failed to look up default admin: %w", err)
	}

	if existing == nil {
		if _, err := s.users.Create(ctx, DefaultAdminUsername, string(hash), RoleAdmin); err != nil {
			return fmt.Errorf("failed to create default admin: %w", err)
		}
		log.Printf("created default admin user %q", DefaultAdminUsername)
		return nil
	}

	if _, err := s.users.UpdateCredentials(ctx, DefaultAdminUsername, string(hash), RoleAdmin); err != nil {
		return fmt.Errorf("failed to promote default admin: %w", err)
	}
	log.Printf("promoted existing user %q to admin and reset its password", DefaultAdminUsername)
	return nil
}
