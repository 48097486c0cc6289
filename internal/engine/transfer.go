package engine

import (
	"math"

	"github.com/invensight/backend-go/internal/domain"
)

// Transfer thresholds. These are deliberately coarse heuristics; the
// logistics cost is a flat placeholder model, not a rate card.
const (
	sourceCoverMinDays  = 60.0
	targetCoverMaxDays  = 10.0
	targetVelocityFloor = 0.1
	minSourceStock      = 10
	sourceShareCap      = 0.5
	transferBaseCost    = 50.0
	transferUnitCost    = 2.0
)

// TransferOpportunity is a proposed stock move between two locations.
type TransferOpportunity struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	FromLocation  string  `json:"from_location"`
	ToLocation    string  `json:"to_location"`
	Quantity      int     `json:"quantity"`
	EstimatedGain float64 `json:"estimated_gain"`
	TransferCost  float64 `json:"transfer_cost"`
}

type locationMetrics struct {
	locationID string
	stock      int
	velocity   float64
	cover      float64
}

// TransferOpportunities scans every product across the registry's
// locations and proposes moves from overstocked sources to starving
// targets. A proposal is only emitted when its estimated margin gain
// exceeds the transfer cost.
func (a *Analyzer) TransferOpportunities(products []domain.Product, sales []domain.Sale) []TransferOpportunity {
	locations := a.registry.Locations()
	opportunities := make([]TransferOpportunity, 0)

	for _, product := range products {
		var sources, targets []locationMetrics

		for _, loc := range locations {
			stock := product.Stock[loc.ID]
			velocity := a.demandVelocityAt(product.ID, loc.ID, sales, a.params.VelocityWindowDays)
			metrics := locationMetrics{
				locationID: loc.ID,
				stock:      stock,
				velocity:   velocity,
				cover:      InventoryCover(stock, velocity),
			}

			if metrics.cover > sourceCoverMinDays {
				sources = append(sources, metrics)
			} else if metrics.cover < targetCoverMaxDays && metrics.velocity > targetVelocityFloor {
				// Locations that are merely empty with no real demand
				// are excluded by the velocity floor.
				targets = append(targets, metrics)
			}
		}

		for _, src := range sources {
			if src.stock <= minSourceStock {
				continue
			}
			for _, tgt := range targets {
				qty := transferQuantity(src, tgt, a.params.OptimalCoverDays)
				if qty <= 0 {
					continue
				}

				gain := product.Margin() * float64(qty)
				cost := transferBaseCost + transferUnitCost*float64(qty)
				if gain <= cost {
					continue
				}

				opportunities = append(opportunities, TransferOpportunity{
					ProductID:     product.ID,
					ProductName:   product.Name,
					FromLocation:  src.locationID,
					ToLocation:    tgt.locationID,
					Quantity:      qty,
					EstimatedGain: gain,
					TransferCost:  cost,
				})
			}
		}
	}

	return opportunities
}

// transferQuantity caps the move at half the source's stock and at the
// quantity needed to restore the target to the optimal cover.
func transferQuantity(src, tgt locationMetrics, optimalCover float64) int {
	fromSource := float64(src.stock) * sourceShareCap
	toTarget := (optimalCover - tgt.cover) * tgt.velocity

	return int(math.Floor(math.Min(fromSource, toTarget)))
}
