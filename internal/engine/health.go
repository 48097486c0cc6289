package engine

import (
	"time"

	"github.com/invensight/backend-go/internal/domain"
)

// ClassifyStockHealth maps a cover value to a three-way status. The
// overstock branch is evaluated first so a value above 2x optimal cover
// can never also register as stockout risk.
func (a *Analyzer) ClassifyStockHealth(coverDays float64) domain.StockStatus {
	switch {
	case coverDays > 2*a.params.OptimalCoverDays:
		return domain.StatusOverstock
	case coverDays < a.params.SafetyStockDays:
		return domain.StatusStockoutRisk
	default:
		return domain.StatusHealthy
	}
}

// Health computes the full derived health snapshot for a product across
// all locations. Dead stock overrides the cover-based classification.
func (a *Analyzer) Health(product domain.Product, sales []domain.Sale) domain.StockHealth {
	velocity := a.DemandVelocity(product.ID, sales, a.params.VelocityWindowDays)
	cover := InventoryCover(product.TotalStock(), velocity)

	health := domain.StockHealth{
		Status:     a.ClassifyStockHealth(cover),
		CoverDays:  cover,
		AgingScore: a.AgingScore(lastSaleDate(product.ID, sales), cover),
	}

	if a.IsDeadStock(product, sales) {
		health.Status = domain.StatusDeadStock
	}

	return health
}

// IsDeadStock reports whether a product is physically in stock but has
// not sold within the threshold. A product with zero stock is never dead
// stock, regardless of sale recency. A product never sold at all counts
// from the epoch.
func (a *Analyzer) IsDeadStock(product domain.Product, sales []domain.Sale) bool {
	if product.TotalStock() == 0 {
		return false
	}

	last := lastSaleDate(product.ID, sales)
	if last.IsZero() {
		last = time.Unix(0, 0).UTC()
	}

	idleDays := a.clock.Now().Sub(last).Hours() / 24

	return idleDays > float64(a.params.DeadStockThresholdDays)
}
