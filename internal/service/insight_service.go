package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/invensight/backend-go/internal/cache"
	"github.com/invensight/backend-go/internal/domain"
	"github.com/invensight/backend-go/internal/engine"
	"github.com/invensight/backend-go/internal/repository"
)

type InsightService struct {
	products  repository.ProductRepository
	sales     repository.SaleRepository
	locations repository.LocationRepository
	cache     cache.AnalyticsCache
	clock     engine.Clock
	params    engine.Params
}

func NewInsightService(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	locations repository.LocationRepository,
	cacheImpl cache.AnalyticsCache,
	clock engine.Clock,
	params engine.Params,
) *InsightService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalyticsCache()
	}
	if clock == nil {
		clock = engine.SystemClock{}
	}

	return &InsightService{
		products:  products,
		sales:     sales,
		locations: locations,
		cache:     cacheImpl,
		clock:     clock,
		params:    params,
	}
}

// GetInsights runs the strategic analysis over a fresh snapshot. Cache
// failures degrade to a recompute, never to an error.
func (s *InsightService) GetInsights(ctx context.Context, filter domain.AnalysisFilter) ([]domain.StrategicInsight, error) {
	if insights, ok, err := s.cache.GetInsights(ctx, filter); err == nil && ok {
		return insights, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("insights: cache get failed")
	}

	snap, err := loadSnapshot(ctx, s.products, s.sales, s.locations, s.clock)
	if err != nil {
		return nil, err
	}

	analyzer := engine.NewAnalyzerWithParams(s.clock, snap.registryFor(filter), s.params)
	insights := analyzer.GenerateInsights(snap.products, snap.sales)

	if filter.Limit > 0 && len(insights) > filter.Limit {
		insights = insights[:filter.Limit]
	}

	if err := s.cache.SetInsights(ctx, filter, insights); err != nil {
		log.Warn().Err(err).Msg("insights: cache set failed")
	}

	return insights, nil
}

// GetLocations exposes the location registry for the dashboard filters.
func (s *InsightService) GetLocations(ctx context.Context) ([]domain.Location, error) {
	return s.locations.ListLocations(ctx)
}
