package postgres

import (
	"context"
	"fmt"

	"github.com/invensight/backend-go/internal/domain"
)

type LocationRepository struct {
	db *DB
}

func NewLocationRepository(db *DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	var locations []domain.Location
	err := r.db.SelectContext(ctx, &locations, `SELECT id, name FROM locations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("could not list locations: %w", err)
	}

	return locations, nil
}
