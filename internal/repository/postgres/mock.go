package postgres

import (
	"context"
	"math"

	"github.com/driverdash/backend/internal/domain"
)

// MockRepository implements domain.ReferenceRepository for testing/demo mode.
// The dataset is deterministic: five cities of six locations each, a demand
// table on the 0.5h grid for clear and rain conditions, and a few
// time-windowed routes per city.
type MockRepository struct{}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// cityCenters anchors the synthetic location grid. Spread far enough apart
// that the global bounding box is clearly non-degenerate.
var cityCenters = [5]struct{ lat, lon float64 }{
	{40.7580, -73.9855},
	{40.6892, -74.0445},
	{40.7484, -73.8648},
	{40.8296, -73.9262},
	{40.6413, -73.7781},
}

// LoadLocations returns the synthetic location set
func (r *MockRepository) LoadLocations(ctx context.Context) ([]domain.Location, error) {
	var locations []domain.Location
	for city := 1; city <= len(cityCenters); city++ {
		center := cityCenters[city-1]
		for n := 0; n < domain.LocationsPerCity; n++ {
			angle := 2 * math.Pi * float64(n) / float64(domain.LocationsPerCity)
			locations = append(locations, domain.Location{
				Number:    n,
				City:      city,
				Latitude:  center.lat + 0.02*math.Sin(angle),
				Longitude: center.lon + 0.02*math.Cos(angle),
			})
		}
	}
	return locations, nil
}

// LoadDemandTable returns a synthetic table: clear and rain conditions,
// cities 1..5, hours 0 to 12 on the 0.5 grid, values modulated by time of
// day so every tier shows up somewhere.
func (r *MockRepository) LoadDemandTable(ctx context.Context) (*domain.DemandTable, error) {
	conditions := []string{"clear", "rain"}
	var rows []domain.DemandRow
	for _, cond := range conditions {
		condBoost := 0.0
		if cond == "rain" {
			condBoost = 2.5
		}
		for city := 1; city <= len(cityCenters); city++ {
			for h := 0.0; h <= 12.0; h += 0.5 {
				values := make([]float64, domain.LocationsPerCity)
				for n := range values {
					base := 2.0 + 1.5*float64((city+n)%4)
					wave := 3.0 * math.Sin((h/12.0)*math.Pi+float64(n))
					v := base + wave + condBoost
					if v < 0 {
						v = 0
					}
					values[n] = math.Round(v*100) / 100
				}
				rows = append(rows, domain.DemandRow{
					Condition:    cond,
					City:         city,
					ElapsedHours: h,
					Values:       values,
				})
			}
		}
	}
	return domain.NewDemandTable(rows), nil
}

// LoadRoutes returns a few synthetic route windows per city
func (r *MockRepository) LoadRoutes(ctx context.Context) ([]domain.Route, error) {
	var routes []domain.Route
	for city := 1; city <= len(cityCenters); city++ {
		routes = append(routes,
			domain.Route{City: city, FromNumber: 0, ToNumber: 3, StartHours: 0, EndHours: 4},
			domain.Route{City: city, FromNumber: 1, ToNumber: 4, StartHours: 2, EndHours: 8},
			domain.Route{City: city, FromNumber: 2, ToNumber: 5, StartHours: 6, EndHours: 12},
		)
	}
	return routes, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
