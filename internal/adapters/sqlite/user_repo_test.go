package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/sentinel/internal/adapters/sqlite"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, "alice", "hash-a", "user")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero generated id")
	}

	user, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.Role != "user" {
		t.Errorf("expected role 'user', got '%s'", user.Role)
	}
	if user.PasswordHash != "hash-a" {
		t.Errorf("expected stored hash, got '%s'", user.PasswordHash)
	}
	if user.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}

	byID, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID == nil || byID.Username != "alice" {
		t.Errorf("unexpected user by id: %+v", byID)
	}
}

func TestUserRepository_GetMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewUserRepository(db)

	user, err := repo.GetByUsername(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for missing user, got %+v", user)
	}
}

func TestUserRepository_DuplicateUsernameRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "alice", "hash-a", "user"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := repo.Create(ctx, "alice", "hash-b", "user"); err == nil {
		t.Fatal("expected uniqueness violation for duplicate username")
	}
}

func TestUserRepository_CountByRole(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", "user")
	seedUser(t, db, "bob", "admin")
	seedUser(t, db, "carol", "admin")

	admins, err := repo.CountByRole(ctx, "admin")
	if err != nil {
		t.Fatalf("CountByRole failed: %v", err)
	}
	if admins != 2 {
		t.Errorf("expected 2 admins, got %d", admins)
	}

	total, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected 3 users, got %d", total)
	}
}

func TestUserRepository_UpdateCredentials(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "admin", "user")

	affected, err := repo.UpdateCredentials(ctx, "admin", "new-hash", "admin")
	if err != nil {
		t.Fatalf("UpdateCredentials failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 row affected, got %d", affected)
	}

	user, _ := repo.GetByUsername(ctx, "admin")
	if user.Role != "admin" || user.PasswordHash != "new-hash" {
		t.Errorf("expected promoted admin with new hash, got %+v", user)
	}

	affected, err = repo.UpdateCredentials(ctx, "ghost", "h", "admin")
	if err != nil {
		t.Fatalf("UpdateCredentials for missing user failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 rows for missing user, got %d", affected)
	}
}

func TestUserRepository_ListOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "first", "user")
	seedUser(t, db, "second", "user")

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Username != "second" {
		t.Errorf("expected newest user first, got '%s'", users[0].Username)
	}
}
