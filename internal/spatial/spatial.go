// Package spatial holds the map-side geometry helpers: great-circle
// distances for radius queries and bounding rectangles for the map
// component's fly-to targets.
package spatial

import (
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is Earth's mean radius.
const EarthRadiusMeters = 6371000.0

// HaversineDistance returns the great-circle distance between two
// points in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Bounds is a latitude/longitude rectangle in degrees, the shape the
// map component consumes for flyToBounds.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// BoundsFromPoints computes the bounding rectangle of a point set.
// The second result is false for an empty set.
func BoundsFromPoints(lats, lons []float64) (Bounds, bool) {
	if len(lats) == 0 || len(lats) != len(lons) {
		return Bounds{}, false
	}
	rect := s2.EmptyRect()
	for i := range lats {
		rect = rect.AddPoint(s2.LatLngFromDegrees(lats[i], lons[i]))
	}
	lo, hi := rect.Lo(), rect.Hi()
	return Bounds{
		MinLat: lo.Lat.Degrees(),
		MinLon: lo.Lng.Degrees(),
		MaxLat: hi.Lat.Degrees(),
		MaxLon: hi.Lng.Degrees(),
	}, true
}

// Contains reports whether a point lies inside the bounds.
func (b Bounds) Contains(lat, lon float64) bool {
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(b.MinLat, b.MinLon))
	rect = rect.AddPoint(s2.LatLngFromDegrees(b.MaxLat, b.MaxLon))
	return rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lon))
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() (float64, float64) {
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(b.MinLat, b.MinLon))
	rect = rect.AddPoint(s2.LatLngFromDegrees(b.MaxLat, b.MaxLon))
	c := rect.Center()
	return c.Lat.Degrees(), c.Lng.Degrees()
}
