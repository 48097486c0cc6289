package postgres

import (
	"context"
	"fmt"
	"time"
)

type IngestRepository struct {
	db *DB
}

func NewIngestRepository(db *DB) *IngestRepository {
	return &IngestRepository{db: db}
}

func (r *IngestRepository) IsProcessed(ctx context.Context, fileID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(1) FROM ingested_files WHERE file_id = $1`, fileID)
	if err != nil {
		return false, fmt.Errorf("could not check ingested file: %w", err)
	}

	return count > 0, nil
}

func (r *IngestRepository) MarkProcessed(ctx context.Context, fileID, name string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingested_files (file_id, name, processed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (file_id) DO UPDATE SET processed_at = EXCLUDED.processed_at`,
		fileID, name, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("could not mark file processed: %w", err)
	}

	return nil
}
