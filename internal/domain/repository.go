package domain

import "context"

// ReferenceRepository loads the immutable reference tables at startup.
// This follows the Dependency Inversion Principle - domain defines the interface
type ReferenceRepository interface {
	// LoadLocations returns every known location across all cities.
	LoadLocations(ctx context.Context) ([]Location, error)

	// LoadDemandTable returns the full (condition, city, hours) demand table.
	LoadDemandTable(ctx context.Context) (*DemandTable, error)

	// LoadRoutes returns the time-windowed route segments for line drawing.
	LoadRoutes(ctx context.Context) ([]Route, error)

	// Health checks data source connectivity.
	Health(ctx context.Context) error
}
