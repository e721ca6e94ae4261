package domain

// Location is one pickup cluster on the map. Identity is (City, Number);
// Number is the demand-table column index, unique within a city.
type Location struct {
	Number    int     `json:"number"`
	City      int     `json:"city"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Route connects two locations of the same city and is drawn on the map
// while the scrubbed time offset falls inside [StartHours, EndHours].
type Route struct {
	City       int     `json:"city"`
	FromNumber int     `json:"from_number"`
	ToNumber   int     `json:"to_number"`
	StartHours float64 `json:"start_hours"`
	EndHours   float64 `json:"end_hours"`
}

// Active reports whether the route should be drawn at the given time offset.
func (r Route) Active(elapsedHours float64) bool {
	return elapsedHours >= r.StartHours && elapsedHours <= r.EndHours
}

// BoundingBox is the minimal lat/lon rectangle enclosing all known locations.
// It is always computed over the complete location set, never a city-filtered
// subset, so markers of different cities stay comparable on one plane.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// ProjectedPoint is a plane position derived from a geographic coordinate.
// Never persisted; recomputed whenever the bounding box or plane size changes.
type ProjectedPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Marker is one rendered map dot.
type Marker struct {
	LocationNumber int            `json:"location_number"`
	Point          ProjectedPoint `json:"point"`
	Value          float64        `json:"value"`
	Tier           Tier           `json:"tier"`
}

// Line is one rendered route segment between two projected endpoints.
type Line struct {
	From       ProjectedPoint `json:"from"`
	To         ProjectedPoint `json:"to"`
	DistanceKm float64        `json:"distance_km"`
}

// RenderFrame is everything the map surface needs for one draw.
type RenderFrame struct {
	City         int         `json:"city"`
	Condition    string      `json:"condition"`
	ElapsedHours float64     `json:"elapsed_hours"`
	Box          BoundingBox `json:"bounding_box"`
	Markers      []Marker    `json:"markers"`
	Lines        []Line      `json:"lines"`
}
