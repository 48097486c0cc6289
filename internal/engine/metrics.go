package engine

import (
	"time"

	"github.com/invensight/backend-go/internal/domain"
)

// UnboundedCoverDays is returned by InventoryCover when stock exists but
// is not moving. Callers comparing cover against thresholds must treat it
// as "effectively infinite", not as a measured value.
const UnboundedCoverDays = 999

// Params holds the tunable thresholds of the analyzer.
type Params struct {
	VelocityWindowDays     int
	OptimalCoverDays       float64
	SafetyStockDays        float64
	DeadStockThresholdDays int
	TopInsights            int
}

// DefaultParams returns the standard analysis thresholds.
func DefaultParams() Params {
	return Params{
		VelocityWindowDays:     30,
		OptimalCoverDays:       30,
		SafetyStockDays:        7,
		DeadStockThresholdDays: 90,
		TopInsights:            5,
	}
}

// Analyzer derives insights and forecasts from immutable product and
// sales snapshots. It holds no mutable state; concurrent use is safe as
// long as each call receives its own snapshot.
type Analyzer struct {
	clock    Clock
	registry LocationRegistry
	params   Params
}

func NewAnalyzer(clock Clock, registry LocationRegistry) *Analyzer {
	return NewAnalyzerWithParams(clock, registry, DefaultParams())
}

func NewAnalyzerWithParams(clock Clock, registry LocationRegistry, params Params) *Analyzer {
	if params.VelocityWindowDays <= 0 {
		params.VelocityWindowDays = 30
	}
	if params.TopInsights <= 0 {
		params.TopInsights = 5
	}

	return &Analyzer{clock: clock, registry: registry, params: params}
}

// DemandVelocity computes the mean daily quantity of a product sold over
// the trailing window. The division always uses the full window length,
// which deliberately dilutes velocity for products with a short selling
// history.
func (a *Analyzer) DemandVelocity(productID string, sales []domain.Sale, days int) float64 {
	return a.demandVelocityAt(productID, "", sales, days)
}

// demandVelocityAt is the location-scoped variant. An empty locationID
// matches sales at every location.
func (a *Analyzer) demandVelocityAt(productID, locationID string, sales []domain.Sale, days int) float64 {
	if len(sales) == 0 {
		return 0
	}
	if days <= 0 {
		days = a.params.VelocityWindowDays
	}

	now := a.clock.Now()
	windowStart := now.AddDate(0, 0, -days)

	total := 0
	for _, sale := range sales {
		if sale.SoldAt.Before(windowStart) || sale.SoldAt.After(now) {
			continue
		}
		if locationID != "" && sale.LocationID != locationID {
			continue
		}
		for _, item := range sale.Items {
			if item.ProductID == productID {
				total += item.Quantity
			}
		}
	}

	return float64(total) / float64(days)
}

// InventoryCover returns how many days the given stock would last at the
// given velocity. Zero stock with no movement is not a cover problem and
// yields 0; stock with no movement yields the unbounded sentinel.
func InventoryCover(stock int, velocity float64) float64 {
	if velocity <= 0 {
		if stock == 0 {
			return 0
		}
		return UnboundedCoverDays
	}

	return float64(stock) / velocity
}

// AgingScore measures how long stock has sat idle relative to its
// expected turnover cycle. A zero lastMovement means the movement date is
// unknown and scores 0.
func (a *Analyzer) AgingScore(lastMovement time.Time, coverDays float64) float64 {
	if lastMovement.IsZero() {
		return 0
	}

	idleDays := a.clock.Now().Sub(lastMovement).Hours() / 24
	denom := coverDays
	if denom < 1 {
		denom = 1
	}

	return idleDays / denom
}

// lastSaleDate reduces the sales history to the most recent date at which
// the product appeared in any sale. The reduction is explicit max-by-date
// so the result does not depend on input ordering. Returns the zero time
// when the product was never sold.
func lastSaleDate(productID string, sales []domain.Sale) time.Time {
	var latest time.Time
	for _, sale := range sales {
		for _, item := range sale.Items {
			if item.ProductID == productID && sale.SoldAt.After(latest) {
				latest = sale.SoldAt
				break
			}
		}
	}

	return latest
}
