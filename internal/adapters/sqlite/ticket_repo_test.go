package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/sentinel/internal/adapters/sqlite"
	"github.com/example/sentinel/internal/ports/secondary"
)

func strPtr(s string) *string { return &s }

func TestTicketRepository_CreateAndGetByTicketID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTicketRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, &secondary.TicketRecord{
		TicketID:    "TCK-100",
		Priority:    "High",
		Status:      "Open",
		Category:    "Network",
		Subject:     "VPN down",
		Description: "Remote users cannot connect",
		CreatedDate: "2024-02-01",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero numeric id")
	}

	ticket, err := repo.GetByTicketID(ctx, "TCK-100")
	if err != nil {
		t.Fatalf("GetByTicketID failed: %v", err)
	}
	if ticket == nil {
		t.Fatal("expected ticket, got nil")
	}
	if ticket.Subject != "VPN down" {
		t.Errorf("expected subject 'VPN down', got '%s'", ticket.Subject)
	}
	if ticket.AssignedTo != "" {
		t.Errorf("expected empty assigned_to, got '%s'", ticket.AssignedTo)
	}
}

func TestTicketRepository_DuplicateTicketIDRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTicketRepository(db)
	ctx := context.Background()

	first := &secondary.TicketRecord{TicketID: "TCK-200", Priority: "Low", Status: "Open"}
	if _, err := repo.Create(ctx, first); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	dup := &secondary.TicketRecord{TicketID: "TCK-200", Priority: "High", Status: "Open"}
	if _, err := repo.Create(ctx, dup); err == nil {
		t.Fatal("expected uniqueness violation for duplicate ticket_id")
	}

	count, _ := repo.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 ticket after rejected duplicate, got %d", count)
	}
}

func TestTicketRepository_PartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTicketRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &secondary.TicketRecord{
		TicketID:    "TCK-300",
		Priority:    "Medium",
		Status:      "Open",
		Category:    "Hardware",
		Description: "Broken keyboard",
		CreatedDate: "2024-03-01",
		AssignedTo:  "dana",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	affected, err := repo.Update(ctx, "TCK-300", secondary.TicketUpdate{
		Status: strPtr("Resolved"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 row affected, got %d", affected)
	}

	ticket, _ := repo.GetByTicketID(ctx, "TCK-300")
	if ticket.Status != "Resolved" {
		t.Errorf("expected status 'Resolved', got '%s'", ticket.Status)
	}
	// Everything not supplied must be untouched.
	if ticket.Priority != "Medium" {
		t.Errorf("expected priority unchanged, got '%s'", ticket.Priority)
	}
	if ticket.Description != "Broken keyboard" {
		t.Errorf("expected description unchanged, got '%s'", ticket.Description)
	}
	if ticket.AssignedTo != "dana" {
		t.Errorf("expected assigned_to unchanged, got '%s'", ticket.AssignedTo)
	}
	if ticket.CreatedDate != "2024-03-01" {
		t.Errorf("expected created_date unchanged, got '%s'", ticket.CreatedDate)
	}
}

func TestTicketRepository_ZeroFieldUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTicketRepository(db)
	ctx := context.Background()

	seedTicket(t, db, "TCK-400", "Low", "Open")

	affected, err := repo.Update(ctx, "TCK-400", secondary.TicketUpdate{})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 rows affected for empty patch, got %d", affected)
	}

	ticket, _ := repo.GetByTicketID(ctx, "TCK-400")
	if ticket.Status != "Open" || ticket.Priority != "Low" {
		t.Errorf("expected record unchanged, got %+v", ticket)
	}
}

func TestTicketRepository_UpdateMissingKey(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTicketRepository(db)

	affected, err := repo.Update(context.Background(), "TCK-NOPE", secondary.TicketUpdate{
		Status: strPtr("Closed"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 rows affected for missing key, got %d", affected)
	}
}

func TestTicketRepository_DeleteByBusinessKey(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTicketRepository(db)
	ctx := context.Background()

	seedTicket(t, db, "TCK-500", "", "")

	affected, err := repo.Delete(ctx, "TCK-500")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 row affected, got %d", affected)
	}

	ticket, err := repo.GetByTicketID(ctx, "TCK-500")
	if err != nil {
		t.Fatalf("GetByTicketID failed: %v", err)
	}
	if ticket != nil {
		t.Errorf("expected ticket gone, got %+v", ticket)
	}
}

func TestTicketRepository_DeleteMissingKey(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTicketRepository(db)

	affected, err := repo.Delete(context.Background(), "TCK-MISSING")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 rows affected, got %d", affected)
	}
}

func TestTicketRepository_ListOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTicketRepository(db)
	ctx := context.Background()

	seedTicket(t, db, "TCK-A", "", "")
	seedTicket(t, db, "TCK-B", "", "")

	tickets, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(tickets))
	}
	if tickets[0].TicketID != "TCK-B" {
		t.Errorf("expected newest ticket first, got '%s'", tickets[0].TicketID)
	}
}
