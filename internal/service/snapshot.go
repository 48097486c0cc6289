package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/invensight/backend-go/internal/domain"
	"github.com/invensight/backend-go/internal/engine"
	"github.com/invensight/backend-go/internal/repository"
)

// historyHorizonDays bounds how much sales history an analysis loads.
// Anything older than the dead-stock threshold cannot change the
// engine's output, so there is no reason to load it.
const historyHorizonDays = 90

type snapshot struct {
	products  []domain.Product
	sales     []domain.Sale
	locations []domain.Location
}

// loadSnapshot fetches the three input collections concurrently. Each
// analysis run receives its own snapshot; the engine never writes back.
func loadSnapshot(
	ctx context.Context,
	products repository.ProductRepository,
	sales repository.SaleRepository,
	locations repository.LocationRepository,
	clock engine.Clock,
) (*snapshot, error) {
	snap := &snapshot{}
	since := clock.Now().AddDate(0, 0, -historyHorizonDays)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.products, err = products.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.sales, err = sales.ListSalesSince(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		snap.locations, err = locations.ListLocations(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snap, nil
}

// registryFor narrows the snapshot's locations to the filtered set when
// one is given.
func (s *snapshot) registryFor(filter domain.AnalysisFilter) engine.LocationRegistry {
	if len(filter.LocationIDs) == 0 {
		return engine.NewStaticRegistry(s.locations)
	}

	wanted := make(map[string]bool, len(filter.LocationIDs))
	for _, id := range filter.LocationIDs {
		wanted[id] = true
	}

	filtered := make([]domain.Location, 0, len(filter.LocationIDs))
	for _, loc := range s.locations {
		if wanted[loc.ID] {
			filtered = append(filtered, loc)
		}
	}

	return engine.NewStaticRegistry(filtered)
}
