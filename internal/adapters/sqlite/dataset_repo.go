package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/sentinel/internal/ports/secondary"
)

// DatasetRepository implements secondary.DatasetRepository with SQLite.
// Dataset metadata is append-only.
type DatasetRepository struct {
	db *sql.DB
}

// NewDatasetRepository creates a new SQLite dataset metadata repository.
func NewDatasetRepository(db *sql.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

const datasetSelectCols = "id, dataset_name, category, source, last_updated, record_count, file_size_mb"

// scanDataset scans a dataset metadata row into a DatasetRecord.
func scanDataset(scanner interface {
	Scan(dest ...any) error
}) (*secondary.DatasetRecord, error) {
	var (
		category    sql.NullString
		source      sql.NullString
		lastUpdated sql.NullString
	)

	record := &secondary.DatasetRecord{}
	err := scanner.Scan(
		&record.ID, &record.DatasetName, &category, &source,
		&lastUpdated, &record.RecordCount, &record.FileSizeMB,
	)
	if err != nil {
		return nil, err
	}
	record.Category = category.String
	record.Source = source.String
	record.LastUpdated = lastUpdated.String

	return record, nil
}

// Create persists a new dataset metadata row and returns its id.
func (r *DatasetRepository) Create(ctx context.Context, dataset *secondary.DatasetRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO datasets_metadata (dataset_name, category, source, last_updated, record_count, file_size_mb) VALUES (?, ?, ?, ?, ?, ?)",
		dataset.DatasetName, dataset.Category, dataset.Source,
		dataset.LastUpdated, dataset.RecordCount, dataset.FileSizeMB,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create dataset metadata: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read dataset id: %w", err)
	}
	return id, nil
}

// List retrieves all dataset metadata ordered by id descending.
func (r *DatasetRepository) List(ctx context.Context) ([]*secondary.DatasetRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+datasetSelectCols+" FROM datasets_metadata ORDER BY id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list dataset metadata: %w", err)
	}
	defer rows.Close()

	var datasets []*secondary.DatasetRecord
	for rows.Next() {
		record, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dataset metadata: %w", err)
		}
		datasets = append(datasets, record)
	}
	return datasets, rows.Err()
}

// Count returns the total number of dataset metadata rows.
func (r *DatasetRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM datasets_metadata").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count dataset metadata: %w", err)
	}
	return count, nil
}
