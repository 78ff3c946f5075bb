package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/sentinel/internal/adapters/sqlite"
	"github.com/example/sentinel/internal/ports/secondary"
)

func TestDatasetRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewDatasetRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, &secondary.DatasetRecord{
		DatasetName: "threat-feeds",
		Category:    "soc-team",
		Source:      "CSV Import",
		LastUpdated: "2024-04-01",
		RecordCount: 1200,
		FileSizeMB:  0.042,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero generated id")
	}

	datasets, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(datasets) != 1 {
		t.Fatalf("expected 1 dataset, got %d", len(datasets))
	}
	if datasets[0].DatasetName != "threat-feeds" {
		t.Errorf("expected name 'threat-feeds', got '%s'", datasets[0].DatasetName)
	}
	if datasets[0].RecordCount != 1200 {
		t.Errorf("expected record count 1200, got %d", datasets[0].RecordCount)
	}
}

func TestDatasetRepository_NegativeRecordCountRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewDatasetRepository(db)

	_, err := repo.Create(context.Background(), &secondary.DatasetRecord{
		DatasetName: "bad",
		RecordCount: -1,
	})
	if err == nil {
		t.Fatal("expected CHECK constraint violation for negative record count")
	}
}

func TestDatasetRepository_Count(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewDatasetRepository(db)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if _, err := repo.Create(ctx, &secondary.DatasetRecord{DatasetName: name}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 datasets, got %d", count)
	}
}
