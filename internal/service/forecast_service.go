package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/invensight/backend-go/internal/cache"
	"github.com/invensight/backend-go/internal/domain"
	"github.com/invensight/backend-go/internal/engine"
	"github.com/invensight/backend-go/internal/repository"
)

type ForecastService struct {
	products  repository.ProductRepository
	sales     repository.SaleRepository
	locations repository.LocationRepository
	cache     cache.AnalyticsCache
	clock     engine.Clock
	params    engine.Params
}

func NewForecastService(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	locations repository.LocationRepository,
	cacheImpl cache.AnalyticsCache,
	clock engine.Clock,
	params engine.Params,
) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalyticsCache()
	}
	if clock == nil {
		clock = engine.SystemClock{}
	}

	return &ForecastService{
		products:  products,
		sales:     sales,
		locations: locations,
		cache:     cacheImpl,
		clock:     clock,
		params:    params,
	}
}

func (s *ForecastService) GetForecasts(ctx context.Context, filter domain.AnalysisFilter) ([]domain.ProductForecast, error) {
	if forecasts, ok, err := s.cache.GetForecasts(ctx, filter); err == nil && ok {
		return forecasts, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("forecast: cache get failed")
	}

	snap, err := loadSnapshot(ctx, s.products, s.sales, s.locations, s.clock)
	if err != nil {
		return nil, err
	}

	analyzer := engine.NewAnalyzerWithParams(s.clock, snap.registryFor(filter), s.params)
	forecasts := analyzer.GenerateForecasts(snap.products, snap.sales)

	if filter.Limit > 0 && len(forecasts) > filter.Limit {
		forecasts = forecasts[:filter.Limit]
	}

	if err := s.cache.SetForecasts(ctx, filter, forecasts); err != nil {
		log.Warn().Err(err).Msg("forecast: cache set failed")
	}

	return forecasts, nil
}
