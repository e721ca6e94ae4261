// Package jsonfile loads the reference tables from static JSON fixtures,
// for running against exported datasets without a database.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/driverdash/backend/internal/domain"
)

const (
	locationsFile = "locations.json"
	demandFile    = "demand.json"
	routesFile    = "routes.json"
)

// JSONRepository implements domain.ReferenceRepository over a directory of
// JSON files: locations.json, demand.json, routes.json.
type JSONRepository struct {
	dir string
}

// NewJSONRepository creates a repository rooted at dir.
func NewJSONRepository(dir string) *JSONRepository {
	return &JSONRepository{dir: dir}
}

// readJSON decodes one fixture file into out.
func (r *JSONRepository) readJSON(name string, out interface{}) error {
	path := filepath.Join(r.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("jsonfile: failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("jsonfile: failed to parse %s: %w", path, err)
	}
	return nil
}

// LoadLocations reads locations.json
func (r *JSONRepository) LoadLocations(ctx context.Context) ([]domain.Location, error) {
	var locations []domain.Location
	if err := r.readJSON(locationsFile, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// LoadDemandTable reads demand.json
func (r *JSONRepository) LoadDemandTable(ctx context.Context) (*domain.DemandTable, error) {
	var rows []domain.DemandRow
	if err := r.readJSON(demandFile, &rows); err != nil {
		return nil, err
	}
	return domain.NewDemandTable(rows), nil
}

// LoadRoutes reads routes.json; a missing file means "no routes", since
// line drawing is optional for a dataset.
func (r *JSONRepository) LoadRoutes(ctx context.Context) ([]domain.Route, error) {
	var routes []domain.Route
	if err := r.readJSON(routesFile, &routes); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return routes, nil
}

// Health verifies the fixture directory is readable.
func (r *JSONRepository) Health(ctx context.Context) error {
	if _, err := os.Stat(r.dir); err != nil {
		return fmt.Errorf("jsonfile: health check failed: %w", err)
	}
	return nil
}
