package postgres

import (
	"context"
	"fmt"

	"github.com/invensight/backend-go/internal/domain"
)

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type productRow struct {
	ID    string  `db:"id"`
	Name  string  `db:"name"`
	Cost  float64 `db:"cost"`
	Price float64 `db:"price"`
}

type stockRow struct {
	ProductID  string `db:"product_id"`
	LocationID string `db:"location_id"`
	Quantity   int    `db:"quantity"`
}

// ListProducts loads the full product catalog with per-location stock.
// Missing cost/price columns come back as 0 via COALESCE; the engine
// treats them as unknown unit economics.
func (r *ProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, COALESCE(cost, 0) AS cost, COALESCE(price, 0) AS price
		FROM products
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("could not list products: %w", err)
	}

	var stocks []stockRow
	err = r.db.SelectContext(ctx, &stocks, `
		SELECT product_id, location_id, quantity
		FROM stock_levels
		WHERE quantity >= 0`)
	if err != nil {
		return nil, fmt.Errorf("could not list stock levels: %w", err)
	}

	byProduct := make(map[string]map[string]int, len(rows))
	for _, s := range stocks {
		if byProduct[s.ProductID] == nil {
			byProduct[s.ProductID] = make(map[string]int)
		}
		byProduct[s.ProductID][s.LocationID] = s.Quantity
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		stock := byProduct[row.ID]
		if stock == nil {
			stock = make(map[string]int)
		}
		products = append(products, domain.Product{
			ID:    row.ID,
			Name:  row.Name,
			Cost:  row.Cost,
			Price: row.Price,
			Stock: stock,
		})
	}

	return products, nil
}
