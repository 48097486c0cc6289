package domain

import "strings"

// StockStatus classifies a product's stock position.
type StockStatus string

const (
	StatusOverstock    StockStatus = "overstock"
	StatusStockoutRisk StockStatus = "stockout_risk"
	StatusHealthy      StockStatus = "healthy"
	StatusDeadStock    StockStatus = "dead_stock"
)

// ActionType identifies the recommended action of an insight.
type ActionType string

const (
	ActionTransfer    ActionType = "TRANSFER"
	ActionLiquidate   ActionType = "LIQUIDATE"
	ActionReorder     ActionType = "REORDER"
	ActionPriceAdjust ActionType = "PRICE_ADJUST"
)

// InsightCategory groups insights for ranking. Ranking is by category
// priority only; monetary magnitude never reorders across categories.
type InsightCategory string

const (
	CategoryRiskMitigation     InsightCategory = "risk_mitigation"
	CategoryProfitOptimization InsightCategory = "profit_optimization"
	CategoryCashFlow           InsightCategory = "cash_flow"
	CategoryGrowth             InsightCategory = "growth"
)

var categoryPriorities = map[InsightCategory]int{
	CategoryRiskMitigation:     3,
	CategoryProfitOptimization: 2,
	CategoryCashFlow:           1,
	CategoryGrowth:             0,
}

// Priority returns the fixed ranking weight for a category. Unknown
// categories rank below growth.
func (c InsightCategory) Priority() int {
	if p, ok := categoryPriorities[c]; ok {
		return p
	}

	return -1
}

// Trend classifies the sales trajectory of a product.
type Trend string

const (
	TrendHighGrowth Trend = "high_growth"
	TrendStable     Trend = "stable"
	TrendDeclining  Trend = "declining"
	TrendNew        Trend = "new"
)

var trendLabels = map[Trend]string{
	TrendHighGrowth: "High Growth",
	TrendStable:     "Stable",
	TrendDeclining:  "Declining",
	TrendNew:        "New",
}

// Label returns a human-readable label for a trend.
func (t Trend) Label() string {
	if label, ok := trendLabels[t]; ok {
		return label
	}

	return "Unknown"
}

// ParseTrend returns the trend for a given label (case-insensitive).
func ParseTrend(label string) (Trend, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(label), " ", "_"))
	switch Trend(normalized) {
	case TrendHighGrowth, TrendStable, TrendDeclining, TrendNew:
		return Trend(normalized), true
	}

	return "", false
}
