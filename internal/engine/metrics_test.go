package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invensight/backend-go/internal/domain"
)

var analysisTime = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func newTestAnalyzer(locations ...string) *Analyzer {
	locs := make([]domain.Location, 0, len(locations))
	for _, id := range locations {
		locs = append(locs, domain.Location{ID: id, Name: id})
	}
	if len(locs) == 0 {
		locs = []domain.Location{{ID: "main", Name: "main"}}
	}

	return NewAnalyzer(FixedClock{Instant: analysisTime}, NewStaticRegistry(locs))
}

func saleOf(productID, locationID string, daysAgo, qty int) domain.Sale {
	return domain.Sale{
		ID:         productID + "-" + locationID,
		LocationID: locationID,
		SoldAt:     analysisTime.AddDate(0, 0, -daysAgo),
		Items:      []domain.SaleItem{{ProductID: productID, Quantity: qty}},
	}
}

func TestDemandVelocityEmptyHistory(t *testing.T) {
	a := newTestAnalyzer()

	for _, days := range []int{1, 7, 30, 365} {
		assert.Zero(t, a.DemandVelocity("p1", nil, days))
		assert.Zero(t, a.DemandVelocity("p1", []domain.Sale{}, days))
	}
}

func TestDemandVelocityFullWindowDivision(t *testing.T) {
	a := newTestAnalyzer()

	// 15 units sold 10 days ago; the window length still divides, so a
	// new product's velocity is diluted rather than overstated.
	sales := []domain.Sale{saleOf("p1", "main", 10, 15)}
	assert.InDelta(t, 0.5, a.DemandVelocity("p1", sales, 30), 1e-9)
}

func TestDemandVelocityIgnoresOutsideWindow(t *testing.T) {
	a := newTestAnalyzer()

	sales := []domain.Sale{
		saleOf("p1", "main", 5, 10),
		saleOf("p1", "main", 45, 100), // before window
		saleOf("p2", "main", 5, 50),   // other product
	}
	assert.InDelta(t, float64(10)/30, a.DemandVelocity("p1", sales, 30), 1e-9)
}

func TestInventoryCover(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		velocity float64
		want     float64
	}{
		{"no stock no movement", 0, 0, 0},
		{"no stock negative velocity", 0, -1, 0},
		{"stock without movement", 50, 0, UnboundedCoverDays},
		{"stock with negative velocity", 50, -0.5, UnboundedCoverDays},
		{"exact division", 100, 2, 50},
		{"fractional velocity", 2, 0.5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InventoryCover(tt.stock, tt.velocity))
		})
	}
}

func TestAgingScore(t *testing.T) {
	a := newTestAnalyzer()

	assert.Zero(t, a.AgingScore(time.Time{}, 30), "unknown movement date scores zero")

	moved := analysisTime.AddDate(0, 0, -60)
	assert.InDelta(t, 2.0, a.AgingScore(moved, 30), 1e-9)

	// Cover below one day is clamped so the score cannot blow up.
	assert.InDelta(t, 60.0, a.AgingScore(moved, 0), 1e-9)
}

func TestLastSaleDateMaxByDate(t *testing.T) {
	latest := analysisTime.AddDate(0, 0, -3)
	sales := []domain.Sale{
		saleOf("p1", "main", 20, 1),
		{ID: "s2", LocationID: "main", SoldAt: latest, Items: []domain.SaleItem{{ProductID: "p1", Quantity: 2}}},
		saleOf("p1", "main", 10, 1),
	}

	require.Equal(t, latest, lastSaleDate("p1", sales))
	assert.True(t, lastSaleDate("missing", sales).IsZero())
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹0", FormatINR(0))
	assert.Equal(t, "₹123", FormatINR(123))
	assert.Equal(t, "₹1,234", FormatINR(1234))
	assert.Equal(t, "₹12,34,567", FormatINR(1234567))
	assert.Equal(t, "₹-50,000", FormatINR(-50000))
}
