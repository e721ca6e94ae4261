package domain

// LocationsPerCity is the fixed width of a demand row; location numbers
// outside [0, LocationsPerCity) always read as zero demand.
const LocationsPerCity = 6

// Tier buckets a demand value for marker coloring.
type Tier string

const (
	TierNone   Tier = "none"
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// DemandRow is one reference-table entry: expected demand per location for a
// (weather condition, city, elapsed hours) triple. ElapsedHours sits on a
// fixed 0.5h grid. Values is ordered by location number 0..5.
type DemandRow struct {
	Condition    string    `json:"condition"`
	City         int       `json:"city"`
	ElapsedHours float64   `json:"elapsed_hours"`
	Values       []float64 `json:"values"`
}

// DemandKey identifies exactly one DemandRow. Lookups are exact triple
// matches; there is no interpolation between hour steps.
type DemandKey struct {
	Condition    string
	City         int
	ElapsedHours float64
}

// DemandTable is the immutable reference table, loaded once at startup.
type DemandTable struct {
	rows  []DemandRow
	index map[DemandKey]int
}

// NewDemandTable builds the lookup index. Later duplicates of a key win,
// matching last-write semantics of the loaders.
func NewDemandTable(rows []DemandRow) *DemandTable {
	t := &DemandTable{
		rows:  rows,
		index: make(map[DemandKey]int, len(rows)),
	}
	for i, r := range rows {
		t.index[DemandKey{Condition: r.Condition, City: r.City, ElapsedHours: r.ElapsedHours}] = i
	}
	return t
}

// Lookup returns the row for an exact (condition, city, elapsedHours) match.
// A miss means "no data", not an error.
func (t *DemandTable) Lookup(key DemandKey) (DemandRow, bool) {
	if t == nil {
		return DemandRow{}, false
	}
	i, ok := t.index[key]
	if !ok {
		return DemandRow{}, false
	}
	return t.rows[i], true
}

// Len returns the number of rows in the table.
func (t *DemandTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// DemandDisplay is the per-location render state derived from one lookup.
type DemandDisplay struct {
	LocationNumber int     `json:"location_number"`
	Value          float64 `json:"value"`
	Tier           Tier    `json:"tier"`
}
