package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/driverdash/backend/internal/demand"
	"github.com/driverdash/backend/internal/domain"
	"github.com/driverdash/backend/internal/geo"
	"github.com/driverdash/backend/pkg/utils"
)

// MapService serves the map render surface: projected markers colored by
// demand tier and the route lines active in the scrubbed time window.
// Reference data is loaded once at startup and read-only afterwards, so
// every query is a pure recomputation over immutable tables.
type MapService struct {
	repo ReferenceRepository

	locations []domain.Location
	table     *domain.DemandTable
	routes    []domain.Route
	box       domain.BoundingBox
}

// NewMapService creates a new map service
func NewMapService(repo ReferenceRepository) *MapService {
	return &MapService{repo: repo}
}

// Load pulls the reference tables from the repository and fixes the global
// bounding box. Must be called once before serving; the box deliberately
// spans ALL cities so markers stay comparable if ever shown together.
func (s *MapService) Load(ctx context.Context) error {
	locations, err := s.repo.LoadLocations(ctx)
	if err != nil {
		return fmt.Errorf("map: failed to load locations: %w", err)
	}
	table, err := s.repo.LoadDemandTable(ctx)
	if err != nil {
		return fmt.Errorf("map: failed to load demand table: %w", err)
	}
	routes, err := s.repo.LoadRoutes(ctx)
	if err != nil {
		return fmt.Errorf("map: failed to load routes: %w", err)
	}

	s.locations = locations
	s.table = table
	s.routes = routes
	s.box = geo.Bounds(locations)

	log.Printf("map: loaded %d locations, %d demand rows, %d routes",
		len(locations), table.Len(), len(routes))
	return nil
}

// Locations returns every known location, ordered by (city, number).
func (s *MapService) Locations() []domain.Location {
	out := make([]domain.Location, len(s.locations))
	copy(out, s.locations)
	sort.Slice(out, func(a, b int) bool {
		if out[a].City != out[b].City {
			return out[a].City < out[b].City
		}
		return out[a].Number < out[b].Number
	})
	return out
}

// LocationsByCity returns one city's locations ordered by number.
func (s *MapService) LocationsByCity(city int) []domain.Location {
	var out []domain.Location
	for _, loc := range s.locations {
		if loc.City == city {
			out = append(out, loc)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Number < out[b].Number })
	return out
}

// Bounds returns the global bounding box.
func (s *MapService) Bounds() domain.BoundingBox { return s.box }

// DemandDisplays derives the per-location demand values and color tiers for
// one (condition, city, hours) selection. A missing table row renders as
// zero demand everywhere, never an error.
func (s *MapService) DemandDisplays(condition string, city int, elapsedHours float64) []domain.DemandDisplay {
	row, ok := demand.Query(s.table, condition, city, elapsedHours)
	locs := s.LocationsByCity(city)
	numbers := make([]int, len(locs))
	for i, loc := range locs {
		numbers[i] = loc.Number
	}
	return demand.DisplayFor(row, ok, numbers)
}

// RenderFrame assembles everything the map surface draws for one selection:
// projected, tier-colored markers for the city's locations and the lines of
// routes whose window contains the scrubbed offset. Recomputed per call.
func (s *MapService) RenderFrame(condition string, city int, elapsedHours, planeW, planeH float64) domain.RenderFrame {
	frame := domain.RenderFrame{
		City:         city,
		Condition:    condition,
		ElapsedHours: elapsedHours,
		Box:          s.box,
		Markers:      []domain.Marker{},
		Lines:        []domain.Line{},
	}

	row, ok := demand.Query(s.table, condition, city, elapsedHours)
	byNumber := make(map[int]domain.Location)
	for _, loc := range s.LocationsByCity(city) {
		byNumber[loc.Number] = loc

		var v float64
		if ok {
			v = demand.ValueFor(row, loc.Number)
		}
		frame.Markers = append(frame.Markers, domain.Marker{
			LocationNumber: loc.Number,
			Point:          geo.ProjectLocation(loc, s.box, planeW, planeH),
			Value:          v,
			Tier:           demand.TierFor(v),
		})
	}

	for _, r := range s.routes {
		if r.City != city || !r.Active(elapsedHours) {
			continue
		}
		from, okFrom := byNumber[r.FromNumber]
		to, okTo := byNumber[r.ToNumber]
		if !okFrom || !okTo {
			continue
		}
		frame.Lines = append(frame.Lines, domain.Line{
			From:       geo.ProjectLocation(from, s.box, planeW, planeH),
			To:         geo.ProjectLocation(to, s.box, planeW, planeH),
			DistanceKm: utils.RoundTo(utils.DistanceKm(from.Latitude, from.Longitude, to.Latitude, to.Longitude), 2),
		})
	}

	return frame
}

// DemandTable exposes the loaded table for the simulator and recommender.
func (s *MapService) DemandTable() *domain.DemandTable { return s.table }
