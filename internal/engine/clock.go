package engine

import (
	"time"

	"github.com/invensight/backend-go/internal/domain"
)

// Clock supplies the analysis reference time. Injecting it keeps every
// computation deterministic for a given snapshot.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}

// LocationRegistry lists the locations considered by the transfer finder.
type LocationRegistry interface {
	Locations() []domain.Location
}

// StaticRegistry is a fixed in-memory location registry.
type StaticRegistry struct {
	locations []domain.Location
}

func NewStaticRegistry(locations []domain.Location) *StaticRegistry {
	return &StaticRegistry{locations: locations}
}

func (r *StaticRegistry) Locations() []domain.Location {
	return r.locations
}
