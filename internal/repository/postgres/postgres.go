package postgres

import (
	"context"
	"fmt"

	"github.com/driverdash/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements domain.ReferenceRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// LoadLocations reads every pickup location from PostgreSQL
func (r *PostgresRepository) LoadLocations(ctx context.Context) ([]domain.Location, error) {
	query := `
		SELECT number, city, latitude, longitude
		FROM locations
		ORDER BY city, number
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query locations: %w", err)
	}
	defer rows.Close()

	var results []domain.Location
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.Number, &l.City, &l.Latitude, &l.Longitude); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan location row: %w", err)
		}
		results = append(results, l)
	}

	return results, rows.Err()
}

// LoadDemandTable reads the full demand reference table from PostgreSQL.
// The per-location values live in a float8[] column ordered by location
// number.
func (r *PostgresRepository) LoadDemandTable(ctx context.Context) (*domain.DemandTable, error) {
	query := `
		SELECT condition, city, elapsed_hours, location_values
		FROM demand_rows
		ORDER BY condition, city, elapsed_hours
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query demand rows: %w", err)
	}
	defer rows.Close()

	var results []domain.DemandRow
	for rows.Next() {
		var d domain.DemandRow
		if err := rows.Scan(&d.Condition, &d.City, &d.ElapsedHours, &d.Values); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan demand row: %w", err)
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: demand row iteration failed: %w", err)
	}

	return domain.NewDemandTable(results), nil
}

// LoadRoutes reads the time-windowed route segments from PostgreSQL
func (r *PostgresRepository) LoadRoutes(ctx context.Context) ([]domain.Route, error) {
	query := `
		SELECT city, from_number, to_number, start_hours, end_hours
		FROM routes
		ORDER BY city, from_number, to_number
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query routes: %w", err)
	}
	defer rows.Close()

	var results []domain.Route
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(&rt.City, &rt.FromNumber, &rt.ToNumber, &rt.StartHours, &rt.EndHours); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan route row: %w", err)
		}
		results = append(results, rt)
	}

	return results, rows.Err()
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
