// Package geo normalizes geographic coordinates onto a render plane.
package geo

import "github.com/driverdash/backend/internal/domain"

// Bounds computes the bounding box of the complete location set. Passing a
// city-filtered subset here would silently shift every marker; callers must
// always hand over all locations.
func Bounds(locations []domain.Location) domain.BoundingBox {
	if len(locations) == 0 {
		return domain.BoundingBox{}
	}
	box := domain.BoundingBox{
		MinLat: locations[0].Latitude,
		MaxLat: locations[0].Latitude,
		MinLon: locations[0].Longitude,
		MaxLon: locations[0].Longitude,
	}
	for _, loc := range locations[1:] {
		if loc.Latitude < box.MinLat {
			box.MinLat = loc.Latitude
		}
		if loc.Latitude > box.MaxLat {
			box.MaxLat = loc.Latitude
		}
		if loc.Longitude < box.MinLon {
			box.MinLon = loc.Longitude
		}
		if loc.Longitude > box.MaxLon {
			box.MaxLon = loc.Longitude
		}
	}
	return box
}

// Project maps a coordinate inside box onto a planeW x planeH plane. The Y
// axis is inverted so northern latitudes render toward the top. A degenerate
// axis (all points sharing a coordinate) yields the plane edge for that axis
// instead of propagating NaN.
func Project(lat, lon float64, box domain.BoundingBox, planeW, planeH float64) domain.ProjectedPoint {
	p := domain.ProjectedPoint{X: 0, Y: planeH}
	if spanLon := box.MaxLon - box.MinLon; spanLon != 0 {
		p.X = (lon - box.MinLon) / spanLon * planeW
	}
	if spanLat := box.MaxLat - box.MinLat; spanLat != 0 {
		p.Y = planeH - (lat-box.MinLat)/spanLat*planeH
	}
	return p
}

// ProjectLocation is Project over a Location's coordinate.
func ProjectLocation(loc domain.Location, box domain.BoundingBox, planeW, planeH float64) domain.ProjectedPoint {
	return Project(loc.Latitude, loc.Longitude, box, planeW, planeH)
}
