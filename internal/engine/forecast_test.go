package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invensight/backend-go/internal/domain"
)

func forecastFor(t *testing.T, forecasts []domain.ProductForecast, productID string) domain.ProductForecast {
	t.Helper()
	for _, f := range forecasts {
		if f.ProductID == productID {
			return f
		}
	}
	t.Fatalf("no forecast for product %s", productID)
	return domain.ProductForecast{}
}

func TestForecastNewProduct(t *testing.T) {
	a := newTestAnalyzer()

	product := domain.Product{ID: "p1", Name: "Launch", Stock: map[string]int{"main": 10}}
	sales := []domain.Sale{saleOf("p1", "main", 10, 15)}

	forecasts := a.GenerateForecasts([]domain.Product{product}, sales)
	require.Len(t, forecasts, 1)

	f := forecasts[0]
	assert.Equal(t, 15, f.CurrentMonthlySales)
	assert.Zero(t, f.PreviousMonthlySales)
	assert.Equal(t, 100.0, f.GrowthRate, "no-previous-activity sentinel")
	assert.Equal(t, domain.TrendNew, f.Trend, "New overrides growth thresholds")
	assert.Equal(t, 15, f.ForecastedSales, "ceil(15*1.0)")
}

func TestForecastTrendClassification(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name         string
		current      int
		previous     int
		wantTrend    domain.Trend
		wantGrowth   float64
		wantForecast int
	}{
		{"high growth", 30, 20, domain.TrendHighGrowth, 50, 36},    // ceil(30*1.2)
		{"declining", 10, 20, domain.TrendDeclining, -50, 9},       // ceil(10*0.9)
		{"stable", 21, 20, domain.TrendStable, 5, 21},              // ceil(21*1.0)
		{"boundary growth", 24, 20, domain.TrendHighGrowth, 20, 29}, // ceil(24*1.2)
		{"no activity", 0, 0, domain.TrendStable, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := domain.Product{ID: "p1", Name: "Widget", Stock: map[string]int{"main": 5}}
			var sales []domain.Sale
			if tt.current > 0 {
				sales = append(sales, saleOf("p1", "main", 10, tt.current))
			}
			if tt.previous > 0 {
				sales = append(sales, saleOf("p1", "main", 45, tt.previous))
			}

			f := forecastFor(t, a.GenerateForecasts([]domain.Product{product}, sales), "p1")
			assert.Equal(t, tt.wantTrend, f.Trend)
			assert.InDelta(t, tt.wantGrowth, f.GrowthRate, 1e-9)
			assert.Equal(t, tt.wantForecast, f.ForecastedSales)
			assert.Equal(t, forecastConfidence, f.Confidence, "confidence stays a placeholder constant")
		})
	}
}

func TestForecastHistoryBuckets(t *testing.T) {
	a := newTestAnalyzer()

	product := domain.Product{ID: "p1", Name: "Widget", Stock: map[string]int{"main": 5}}
	sameDay := analysisTime.AddDate(0, 0, -10)
	sales := []domain.Sale{
		{ID: "s1", LocationID: "main", SoldAt: sameDay, Items: []domain.SaleItem{{ProductID: "p1", Quantity: 3}}},
		{ID: "s2", LocationID: "main", SoldAt: sameDay.Add(2 * time.Hour), Items: []domain.SaleItem{{ProductID: "p1", Quantity: 4}}},
		saleOf("p1", "main", 40, 6),
		saleOf("p1", "main", 90, 99), // outside the 60-day history
	}

	f := forecastFor(t, a.GenerateForecasts([]domain.Product{product}, sales), "p1")
	require.Len(t, f.History, 2)
	assert.True(t, f.History[0].Date < f.History[1].Date, "history is date-ordered")
	assert.Equal(t, 6, f.History[0].Value)
	assert.Equal(t, 7, f.History[1].Value, "same-day sales are summed")
}

func TestForecastsSortedByVolume(t *testing.T) {
	a := newTestAnalyzer()

	products := []domain.Product{
		{ID: "low", Name: "Low", Stock: map[string]int{"main": 5}},
		{ID: "high", Name: "High", Stock: map[string]int{"main": 5}},
		{ID: "none", Name: "None", Stock: map[string]int{"main": 5}},
	}
	sales := []domain.Sale{
		saleOf("low", "main", 10, 5),
		saleOf("high", "main", 10, 50),
	}

	forecasts := a.GenerateForecasts(products, sales)
	require.Len(t, forecasts, 3)
	assert.Equal(t, "high", forecasts[0].ProductID)
	assert.Equal(t, "low", forecasts[1].ProductID)
	assert.Equal(t, "none", forecasts[2].ProductID)
}

func TestForecastsIdempotent(t *testing.T) {
	a := newTestAnalyzer()

	products := []domain.Product{{ID: "p1", Name: "Widget", Stock: map[string]int{"main": 5}}}
	sales := []domain.Sale{saleOf("p1", "main", 10, 15), saleOf("p1", "main", 45, 10)}

	first := a.GenerateForecasts(products, sales)
	second := a.GenerateForecasts(products, sales)
	assert.Equal(t, first, second)
}
