package repository

import (
	"context"
	"time"

	"github.com/invensight/backend-go/internal/domain"
)

// ProductRepository supplies validated product snapshots, including
// per-location stock levels.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// SaleRepository supplies immutable sales history and accepts ingested
// sales records.
type SaleRepository interface {
	ListSalesSince(ctx context.Context, since time.Time) ([]domain.Sale, error)
	InsertSales(ctx context.Context, sales []domain.Sale) error
}

// LocationRepository lists the registered selling locations.
type LocationRepository interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
}

// IngestRepository tracks which remote export files have been processed.
type IngestRepository interface {
	IsProcessed(ctx context.Context, fileID string) (bool, error)
	MarkProcessed(ctx context.Context, fileID, name string) error
}
