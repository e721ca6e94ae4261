package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driverdash/backend/internal/domain"
)

// stubRepo serves fixed reference data.
type stubRepo struct {
	locations []domain.Location
	rows      []domain.DemandRow
	routes    []domain.Route
}

func (r *stubRepo) LoadLocations(ctx context.Context) ([]domain.Location, error) {
	return r.locations, nil
}

func (r *stubRepo) LoadDemandTable(ctx context.Context) (*domain.DemandTable, error) {
	return domain.NewDemandTable(r.rows), nil
}

func (r *stubRepo) LoadRoutes(ctx context.Context) ([]domain.Route, error) {
	return r.routes, nil
}

func (r *stubRepo) Health(ctx context.Context) error { return nil }

func newTestMapService(t *testing.T) *MapService {
	t.Helper()

	repo := &stubRepo{
		locations: []domain.Location{
			{Number: 0, City: 2, Latitude: 40.70, Longitude: -74.00},
			{Number: 1, City: 2, Latitude: 40.72, Longitude: -73.98},
			{Number: 2, City: 2, Latitude: 40.74, Longitude: -73.96},
			{Number: 3, City: 2, Latitude: 40.76, Longitude: -73.94},
			{Number: 4, City: 2, Latitude: 40.78, Longitude: -73.92},
			{Number: 5, City: 2, Latitude: 40.80, Longitude: -73.90},
			// A stray location outside the demand row's index range.
			{Number: 7, City: 2, Latitude: 40.82, Longitude: -73.88},
			// Another city, part of the global bounding box.
			{Number: 0, City: 1, Latitude: 40.60, Longitude: -74.10},
		},
		rows: []domain.DemandRow{
			{Condition: "clear", City: 2, ElapsedHours: 3.5, Values: []float64{0, 3, 4.5, 8, 9, 12}},
		},
		routes: []domain.Route{
			{City: 2, FromNumber: 0, ToNumber: 5, StartHours: 2, EndHours: 5},
			{City: 2, FromNumber: 1, ToNumber: 4, StartHours: 6, EndHours: 9},
			{City: 1, FromNumber: 0, ToNumber: 1, StartHours: 0, EndHours: 24},
		},
	}

	svc := NewMapService(repo)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestRenderFrameTiers(t *testing.T) {
	svc := newTestMapService(t)

	frame := svc.RenderFrame("clear", 2, 3.5, 800, 600)
	require.Len(t, frame.Markers, 7)

	wantTiers := map[int]domain.Tier{
		0: domain.TierNone,
		1: domain.TierLow,
		2: domain.TierMedium,
		3: domain.TierMedium,
		4: domain.TierHigh,
		5: domain.TierHigh,
		7: domain.TierNone, // outside 0..5 renders none regardless of table
	}
	for _, m := range frame.Markers {
		assert.Equal(t, wantTiers[m.LocationNumber], m.Tier, "location %d", m.LocationNumber)
	}
}

func TestRenderFrameMissingRow(t *testing.T) {
	svc := newTestMapService(t)

	// Off-grid hours miss the table; every marker renders zero/none.
	frame := svc.RenderFrame("clear", 2, 3.0, 800, 600)
	require.Len(t, frame.Markers, 7)
	for _, m := range frame.Markers {
		assert.Equal(t, 0.0, m.Value)
		assert.Equal(t, domain.TierNone, m.Tier)
	}
}

func TestRenderFrameMarkersOnPlane(t *testing.T) {
	svc := newTestMapService(t)

	frame := svc.RenderFrame("clear", 2, 3.5, 800, 600)
	for _, m := range frame.Markers {
		assert.GreaterOrEqual(t, m.Point.X, 0.0)
		assert.LessOrEqual(t, m.Point.X, 800.0)
		assert.GreaterOrEqual(t, m.Point.Y, 0.0)
		assert.LessOrEqual(t, m.Point.Y, 600.0)
	}
}

func TestRenderFrameLinesWindow(t *testing.T) {
	svc := newTestMapService(t)

	// At 3.5h only the 2..5h route of city 2 is active.
	frame := svc.RenderFrame("clear", 2, 3.5, 800, 600)
	require.Len(t, frame.Lines, 1)
	assert.Greater(t, frame.Lines[0].DistanceKm, 0.0)

	// At 7h the other route takes over.
	frame = svc.RenderFrame("clear", 2, 7.0, 800, 600)
	assert.Len(t, frame.Lines, 1)

	// Outside both windows nothing is drawn.
	frame = svc.RenderFrame("clear", 2, 12.0, 800, 600)
	assert.Empty(t, frame.Lines)
}

func TestBoundsSpanAllCities(t *testing.T) {
	svc := newTestMapService(t)

	// The city 1 location stretches the box; projection frames must share it.
	box := svc.Bounds()
	assert.Equal(t, 40.60, box.MinLat)
	assert.Equal(t, -74.10, box.MinLon)
	assert.Equal(t, 40.82, box.MaxLat)
	assert.Equal(t, -73.88, box.MaxLon)

	frame := svc.RenderFrame("clear", 2, 3.5, 800, 600)
	assert.Equal(t, box, frame.Box)
}

func TestDemandDisplays(t *testing.T) {
	svc := newTestMapService(t)

	displays := svc.DemandDisplays("clear", 2, 3.5)
	require.Len(t, displays, 7)
	assert.Equal(t, 0, displays[0].LocationNumber)
	assert.Equal(t, domain.TierHigh, displays[5].Tier)
	assert.Equal(t, domain.TierNone, displays[6].Tier)
}

func TestLocationsByCity(t *testing.T) {
	svc := newTestMapService(t)

	locs := svc.LocationsByCity(1)
	require.Len(t, locs, 1)
	assert.Equal(t, 0, locs[0].Number)

	assert.Empty(t, svc.LocationsByCity(9))
	assert.Len(t, svc.Locations(), 8)
}
