package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/invensight/backend-go/internal/domain"
)

type SaleRepository struct {
	db *DB
}

func NewSaleRepository(db *DB) *SaleRepository {
	return &SaleRepository{db: db}
}

type saleRow struct {
	ID         string    `db:"id"`
	LocationID string    `db:"location_id"`
	SoldAt     time.Time `db:"sold_at"`
}

type saleItemRow struct {
	SaleID    string `db:"sale_id"`
	ProductID string `db:"product_id"`
	Quantity  int    `db:"quantity"`
}

// ListSalesSince loads the sales history from the given instant onwards,
// oldest first, with items attached.
func (r *SaleRepository) ListSalesSince(ctx context.Context, since time.Time) ([]domain.Sale, error) {
	var rows []saleRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, location_id, sold_at
		FROM sales
		WHERE sold_at >= $1
		ORDER BY sold_at`, since)
	if err != nil {
		return nil, fmt.Errorf("could not list sales: %w", err)
	}
	if len(rows) == 0 {
		return []domain.Sale{}, nil
	}

	var items []saleItemRow
	err = r.db.SelectContext(ctx, &items, `
		SELECT si.sale_id, si.product_id, si.quantity
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.sold_at >= $1 AND si.quantity > 0`, since)
	if err != nil {
		return nil, fmt.Errorf("could not list sale items: %w", err)
	}

	itemsBySale := make(map[string][]domain.SaleItem, len(rows))
	for _, item := range items {
		itemsBySale[item.SaleID] = append(itemsBySale[item.SaleID], domain.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	sales := make([]domain.Sale, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, domain.Sale{
			ID:         row.ID,
			LocationID: row.LocationID,
			SoldAt:     row.SoldAt,
			Items:      itemsBySale[row.ID],
		})
	}

	return sales, nil
}

// InsertSales writes ingested sales and their items in one transaction.
// Re-ingesting the same sale id is a no-op; sales are immutable facts.
func (r *SaleRepository) InsertSales(ctx context.Context, sales []domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		saleStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO sales (id, location_id, sold_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING`)
		if err != nil {
			return fmt.Errorf("could not prepare sale insert: %w", err)
		}
		defer saleStmt.Close()

		itemStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO sale_items (sale_id, product_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (sale_id, product_id) DO NOTHING`)
		if err != nil {
			return fmt.Errorf("could not prepare sale item insert: %w", err)
		}
		defer itemStmt.Close()

		for _, sale := range sales {
			if _, err := saleStmt.ExecContext(ctx, sale.ID, sale.LocationID, sale.SoldAt); err != nil {
				return fmt.Errorf("could not insert sale %s: %w", sale.ID, err)
			}
			for _, item := range sale.Items {
				if _, err := itemStmt.ExecContext(ctx, sale.ID, item.ProductID, item.Quantity); err != nil {
					return fmt.Errorf("could not insert item for sale %s: %w", sale.ID, err)
				}
			}
		}

		return nil
	})
}
