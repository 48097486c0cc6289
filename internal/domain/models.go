// backend-go/internal/domain/models.go
package domain

import "time"

// Location represents a selling location (store or warehouse).
type Location struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Product represents a catalog item with per-location stock levels.
// Cost and Price may be zero when the source record omits them.
type Product struct {
	ID    string         `json:"id" db:"id"`
	Name  string         `json:"name" db:"name"`
	Cost  float64        `json:"cost" db:"cost"`
	Price float64        `json:"price" db:"price"`
	Stock map[string]int `json:"stock"`
}

// TotalStock returns the stock summed across all locations.
func (p Product) TotalStock() int {
	total := 0
	for _, qty := range p.Stock {
		total += qty
	}
	return total
}

// Margin returns the per-unit margin (price minus cost).
func (p Product) Margin() float64 {
	return p.Price - p.Cost
}

// SaleItem is a single line of a sale.
type SaleItem struct {
	ProductID string `json:"product_id" db:"product_id"`
	Quantity  int    `json:"quantity" db:"quantity"`
}

// Sale is an immutable historical sales record.
type Sale struct {
	ID         string     `json:"id" db:"id"`
	LocationID string     `json:"location_id" db:"location_id"`
	SoldAt     time.Time  `json:"sold_at" db:"sold_at"`
	Items      []SaleItem `json:"items"`
}

// StockHealth is the derived health snapshot for a product. It is
// recomputed on every analysis run and never persisted.
type StockHealth struct {
	Status     StockStatus `json:"status"`
	CoverDays  float64     `json:"cover_days"`
	AgingScore float64     `json:"aging_score"`
}

// StrategicInsight is a ranked recommendation produced by the analyzer.
type StrategicInsight struct {
	ID                string            `json:"id"`
	Type              InsightCategory   `json:"type"`
	Problem           string            `json:"problem"`
	Impact            string            `json:"impact"`
	RecommendedAction string            `json:"recommended_action"`
	ROIImpact         string            `json:"roi_impact"`
	ConfidenceScore   float64           `json:"confidence_score"`
	ActionType        ActionType        `json:"action_type"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// SalesPoint is one bucketed day of sales history, used for charting.
type SalesPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// ProductForecast is the per-product growth forecast.
type ProductForecast struct {
	ProductID            string       `json:"product_id"`
	Name                 string       `json:"name"`
	CurrentMonthlySales  int          `json:"current_monthly_sales"`
	PreviousMonthlySales int          `json:"previous_monthly_sales"`
	GrowthRate           float64      `json:"growth_rate"`
	Trend                Trend        `json:"trend"`
	ForecastedSales      int          `json:"forecasted_sales"`
	Confidence           float64      `json:"confidence"`
	History              []SalesPoint `json:"history"`
}

// AnalysisFilter narrows an insight or forecast request.
type AnalysisFilter struct {
	LocationIDs []string `json:"location_ids"`
	Limit       int      `json:"limit"`
}
