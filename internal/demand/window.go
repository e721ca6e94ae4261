// Package demand answers "how busy is each pickup location at this time
// offset" from the pre-computed reference table.
package demand

import "github.com/driverdash/backend/internal/domain"

// Query finds the demand row for an exact (condition, city, elapsedHours)
// triple. The time grid is fixed at 0.5h steps and there is no interpolation
// or nearest-neighbor fallback: a miss is "no data" and renders as zero
// demand for every location of that city.
func Query(table *domain.DemandTable, condition string, city int, elapsedHours float64) (domain.DemandRow, bool) {
	return table.Lookup(domain.DemandKey{
		Condition:    condition,
		City:         city,
		ElapsedHours: elapsedHours,
	})
}

// ValueFor reads one location's demand out of a row. Indexes outside
// [0, LocationsPerCity) read as 0 so the render layer can treat demand as a
// total function over whatever location numbers it holds.
func ValueFor(row domain.DemandRow, locationIndex int) float64 {
	if locationIndex < 0 || locationIndex >= domain.LocationsPerCity {
		return 0
	}
	if locationIndex >= len(row.Values) {
		return 0
	}
	return row.Values[locationIndex]
}

// TierFor buckets a demand value for marker coloring.
func TierFor(value float64) domain.Tier {
	switch {
	case value <= 0:
		return domain.TierNone
	case value <= 4:
		return domain.TierLow
	case value <= 8:
		return domain.TierMedium
	default:
		return domain.TierHigh
	}
}

// DisplayFor derives the per-location render states for one lookup result.
// ok=false (no data) yields zero values and TierNone across the board.
func DisplayFor(row domain.DemandRow, ok bool, locationNumbers []int) []domain.DemandDisplay {
	displays := make([]domain.DemandDisplay, 0, len(locationNumbers))
	for _, n := range locationNumbers {
		var v float64
		if ok {
			v = ValueFor(row, n)
		}
		displays = append(displays, domain.DemandDisplay{
			LocationNumber: n,
			Value:          v,
			Tier:           TierFor(v),
		})
	}
	return displays
}

// RevenueVector flattens a lookup into the fixed-width per-location values
// used by the allocation simulator. A missing row yields the zero vector.
func RevenueVector(table *domain.DemandTable, condition string, city int, elapsedHours float64) []float64 {
	vec := make([]float64, domain.LocationsPerCity)
	row, ok := Query(table, condition, city, elapsedHours)
	if !ok {
		return vec
	}
	for i := range vec {
		vec[i] = ValueFor(row, i)
	}
	return vec
}
