package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/invensight/backend-go/internal/domain"
)

const (
	deadStockMateriality = 1000.0
	liquidationRecovery  = 0.7

	reorderCoverMaxDays  = 14.0
	reorderVelocityFloor = 0.5

	transferConfidence = 0.8
	cashFlowConfidence = 0.75
	reorderConfidence  = 0.85
)

// GenerateInsights runs the full strategic analysis over a snapshot and
// returns the top insights, ranked by category priority. Ordering within
// a category follows insertion order; monetary magnitude is never the
// sort key.
func (a *Analyzer) GenerateInsights(products []domain.Product, sales []domain.Sale) []domain.StrategicInsight {
	insights := make([]domain.StrategicInsight, 0)

	for _, opp := range a.TransferOpportunities(products, sales) {
		insights = append(insights, transferInsight(opp))
	}

	for _, product := range products {
		if insight, ok := a.deadStockInsight(product, sales); ok {
			insights = append(insights, insight)
		}
	}

	for _, product := range products {
		if insight, ok := a.reorderInsight(product, sales); ok {
			insights = append(insights, insight)
		}
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Type.Priority() > insights[j].Type.Priority()
	})

	if len(insights) > a.params.TopInsights {
		insights = insights[:a.params.TopInsights]
	}

	return insights
}

func transferInsight(opp TransferOpportunity) domain.StrategicInsight {
	net := opp.EstimatedGain - opp.TransferCost

	return domain.StrategicInsight{
		ID:   fmt.Sprintf("transfer-%s-%s-%s", opp.ProductID, opp.FromLocation, opp.ToLocation),
		Type: domain.CategoryProfitOptimization,
		Problem: fmt.Sprintf("%s is overstocked at %s while %s is running dry",
			opp.ProductName, opp.FromLocation, opp.ToLocation),
		Impact: fmt.Sprintf("%s in unrealized sales", FormatINR(opp.EstimatedGain)),
		RecommendedAction: fmt.Sprintf("Move %d units of %s from %s to %s",
			opp.Quantity, opp.ProductName, opp.FromLocation, opp.ToLocation),
		ROIImpact:       fmt.Sprintf("%s net after %s transfer cost", FormatINR(net), FormatINR(opp.TransferCost)),
		ConfidenceScore: transferConfidence,
		ActionType:      domain.ActionTransfer,
		Metadata: map[string]string{
			"from_location":  opp.FromLocation,
			"to_location":    opp.ToLocation,
			"quantity":       strconv.Itoa(opp.Quantity),
			"estimated_gain": formatAmount(opp.EstimatedGain),
			"transfer_cost":  formatAmount(opp.TransferCost),
		},
	}
}

// deadStockInsight flags capital blocked in dead stock above the
// materiality threshold, assuming a fixed recovery rate on liquidation
// markdown.
func (a *Analyzer) deadStockInsight(product domain.Product, sales []domain.Sale) (domain.StrategicInsight, bool) {
	if !a.IsDeadStock(product, sales) {
		return domain.StrategicInsight{}, false
	}

	blocked := product.Cost * float64(product.TotalStock())
	if blocked <= deadStockMateriality {
		return domain.StrategicInsight{}, false
	}

	recoverable := blocked * liquidationRecovery

	return domain.StrategicInsight{
		ID:   "liquidate-" + product.ID,
		Type: domain.CategoryCashFlow,
		Problem: fmt.Sprintf("%s has not sold in over %d days with %d units on hand",
			product.Name, a.params.DeadStockThresholdDays, product.TotalStock()),
		Impact:            fmt.Sprintf("%s of capital blocked", FormatINR(blocked)),
		RecommendedAction: fmt.Sprintf("Liquidate %s at markdown to free up cash", product.Name),
		ROIImpact:         fmt.Sprintf("Recover ~%s at %d%% recovery", FormatINR(recoverable), int(liquidationRecovery*100)),
		ConfidenceScore:   cashFlowConfidence,
		ActionType:        domain.ActionLiquidate,
		Metadata: map[string]string{
			"blocked_capital": formatAmount(blocked),
			"recoverable":     formatAmount(recoverable),
			"units":           strconv.Itoa(product.TotalStock()),
		},
	}, true
}

// reorderInsight flags stockout risk when overall cover and velocity
// cross the reorder thresholds. The protected-profit figure can go
// negative when price < cost; that mirrors the source data and is left
// to the presentation layer.
func (a *Analyzer) reorderInsight(product domain.Product, sales []domain.Sale) (domain.StrategicInsight, bool) {
	velocity := a.DemandVelocity(product.ID, sales, a.params.VelocityWindowDays)
	cover := InventoryCover(product.TotalStock(), velocity)

	if cover >= reorderCoverMaxDays || velocity <= reorderVelocityFloor {
		return domain.StrategicInsight{}, false
	}

	qty := int(math.Ceil(velocity * a.params.OptimalCoverDays))
	protected := product.Margin() * float64(qty)

	return domain.StrategicInsight{
		ID:   "reorder-" + product.ID,
		Type: domain.CategoryRiskMitigation,
		Problem: fmt.Sprintf("%s will stock out in ~%d days at current velocity",
			product.Name, int(cover)),
		Impact:            fmt.Sprintf("%s in sales at risk", FormatINR(velocity*reorderCoverMaxDays*product.Price)),
		RecommendedAction: fmt.Sprintf("Reorder %d units of %s now", qty, product.Name),
		ROIImpact:         fmt.Sprintf("Protects %s in profit", FormatINR(protected)),
		ConfidenceScore:   reorderConfidence,
		ActionType:        domain.ActionReorder,
		Metadata: map[string]string{
			"reorder_quantity": strconv.Itoa(qty),
			"cover_days":       formatAmount(cover),
			"velocity":         formatAmount(velocity),
		},
	}, true
}

// FormatINR renders an amount with Indian digit grouping, e.g. ₹12,34,567.
// Structured numeric values travel in insight metadata; this is only for
// the human-readable strings.
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := strconv.FormatInt(int64(math.Round(amount)), 10)
	if len(whole) <= 3 {
		return "₹" + sign + whole
	}

	grouped := whole[len(whole)-3:]
	rest := whole[:len(whole)-3]
	for len(rest) > 2 {
		grouped = rest[len(rest)-2:] + "," + grouped
		rest = rest[:len(rest)-2]
	}

	return "₹" + sign + rest + "," + grouped
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
