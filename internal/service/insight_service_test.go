package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invensight/backend-go/internal/domain"
	"github.com/invensight/backend-go/internal/engine"
)

var testTime = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

type stubProductRepo struct{ products []domain.Product }

func (s *stubProductRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

type stubSaleRepo struct{ sales []domain.Sale }

func (s *stubSaleRepo) ListSalesSince(ctx context.Context, since time.Time) ([]domain.Sale, error) {
	kept := make([]domain.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		if !sale.SoldAt.Before(since) {
			kept = append(kept, sale)
		}
	}
	return kept, nil
}

func (s *stubSaleRepo) InsertSales(ctx context.Context, sales []domain.Sale) error {
	s.sales = append(s.sales, sales...)
	return nil
}

type stubLocationRepo struct{ locations []domain.Location }

func (s *stubLocationRepo) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return s.locations, nil
}

func testSnapshotRepos() (*stubProductRepo, *stubSaleRepo, *stubLocationRepo) {
	products := &stubProductRepo{products: []domain.Product{
		{
			ID: "skewed", Name: "Skewed Stock",
			Cost: 60, Price: 100,
			Stock: map[string]int{"A": 100, "B": 2},
		},
		{
			ID: "dead", Name: "Dead Weight",
			Cost: 40, Price: 90,
			Stock: map[string]int{"A": 80},
		},
	}}
	sales := &stubSaleRepo{sales: []domain.Sale{
		{
			ID: "s1", LocationID: "B", SoldAt: testTime.AddDate(0, 0, -10),
			Items: []domain.SaleItem{{ProductID: "skewed", Quantity: 15}},
		},
	}}
	locations := &stubLocationRepo{locations: []domain.Location{
		{ID: "A", Name: "Andheri"},
		{ID: "B", Name: "Borivali"},
	}}

	return products, sales, locations
}

func newTestInsightService() *InsightService {
	products, sales, locations := testSnapshotRepos()
	return NewInsightService(products, sales, locations, nil,
		engine.FixedClock{Instant: testTime}, engine.DefaultParams())
}

func TestGetInsights(t *testing.T) {
	svc := newTestInsightService()

	insights, err := svc.GetInsights(context.Background(), domain.AnalysisFilter{})
	require.NoError(t, err)
	require.Len(t, insights, 2)

	// Transfer (profit optimization) ranks above liquidation (cash flow).
	assert.Equal(t, domain.ActionTransfer, insights[0].ActionType)
	assert.Equal(t, domain.ActionLiquidate, insights[1].ActionType)
}

func TestGetInsightsLimit(t *testing.T) {
	svc := newTestInsightService()

	insights, err := svc.GetInsights(context.Background(), domain.AnalysisFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, insights, 1)
}

func TestGetInsightsLocationFilter(t *testing.T) {
	svc := newTestInsightService()

	// Without location B in scope the transfer disappears; the dead
	// stock insight is location-independent.
	insights, err := svc.GetInsights(context.Background(),
		domain.AnalysisFilter{LocationIDs: []string{"A"}})
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, domain.ActionLiquidate, insights[0].ActionType)
}

func TestGetInsightsIdempotent(t *testing.T) {
	svc := newTestInsightService()

	first, err := svc.GetInsights(context.Background(), domain.AnalysisFilter{})
	require.NoError(t, err)
	second, err := svc.GetInsights(context.Background(), domain.AnalysisFilter{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetForecasts(t *testing.T) {
	products, sales, locations := testSnapshotRepos()
	svc := NewForecastService(products, sales, locations, nil,
		engine.FixedClock{Instant: testTime}, engine.DefaultParams())

	forecasts, err := svc.GetForecasts(context.Background(), domain.AnalysisFilter{})
	require.NoError(t, err)
	require.Len(t, forecasts, 2)

	assert.Equal(t, "skewed", forecasts[0].ProductID)
	assert.Equal(t, domain.TrendNew, forecasts[0].Trend)
	assert.Equal(t, 15, forecasts[0].ForecastedSales)
	assert.Equal(t, "dead", forecasts[1].ProductID)
	assert.Zero(t, forecasts[1].ForecastedSales)
}
