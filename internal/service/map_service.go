package service

import (
	"errors"

	"github.com/swapdash/telemetry-backend-go/internal/models"
	"github.com/swapdash/telemetry-backend-go/internal/session"
	"github.com/swapdash/telemetry-backend-go/internal/spatial"
)

// Marker colors follow the dashboard convention: stations green,
// everything else red. The map component applies highlight styling
// itself.
const (
	ColorStation    = "green"
	ColorNonStation = "red"
)

// ErrNoCentroids means a map query matched nothing to frame.
var ErrNoCentroids = errors.New("no centroids match")

// Marker is one map point: classification-derived color only, no
// styling beyond that.
type Marker struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Color string  `json:"color"`
}

// MapService handles the map collaborator's queries against session
// state.
type MapService struct {
	manager *session.Manager
}

// NewMapService creates a new map service.
func NewMapService(manager *session.Manager) *MapService {
	return &MapService{manager: manager}
}

// Markers lists one marker per unique centroid across the active dates.
// Centroids are keyed by dynamic name — ids are not stable between
// snapshot dates. With lat/lon and a radius given, only markers within
// that great-circle distance are returned (the boundsContains query of
// the map component, answered server-side).
func (s *MapService) Markers(sessionID string, lat, lon, radiusMeters float64) ([]Marker, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	markers := make([]Marker, 0)
	seen := make(map[string]bool)
	sess.ActiveSnapshots(func(snaps []*models.Snapshot) {
		for _, snap := range snaps {
			for _, c := range snap.Centroids {
				name := c.DynamicName
				if name == "" {
					name = c.Name
				}
				if seen[name] {
					continue
				}
				if radiusMeters > 0 && spatial.HaversineDistance(lat, lon, c.Latitude, c.Longitude) > radiusMeters {
					continue
				}
				seen[name] = true
				color := ColorNonStation
				if c.Type == models.TypeStation {
					color = ColorStation
				}
				markers = append(markers, Marker{
					ID:    name,
					Name:  name,
					Lat:   c.Latitude,
					Lon:   c.Longitude,
					Color: color,
				})
			}
		}
	})
	return markers, nil
}

// BoundsResult frames a centroid set for the map's flyToBounds.
type BoundsResult struct {
	Bounds    spatial.Bounds `json:"bounds"`
	CenterLat float64        `json:"center_lat"`
	CenterLon float64        `json:"center_lon"`
	Count     int            `json:"count"`
}

// SelectionBounds computes the bounding rectangle of the centroids in
// the current group selection, the map's fly-to target on group click.
func (s *MapService) SelectionBounds(sessionID string) (*BoundsResult, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	rows := sess.SelectionRows()
	seen := make(map[string]bool)
	var lats, lons []float64
	for _, r := range rows {
		key := r.CentroidName
		if key == "" {
			key = r.CentroidID
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		lats = append(lats, r.Latitude)
		lons = append(lons, r.Longitude)
	}

	bounds, ok := spatial.BoundsFromPoints(lats, lons)
	if !ok {
		return nil, ErrNoCentroids
	}
	lat, lon := bounds.Center()
	return &BoundsResult{Bounds: bounds, CenterLat: lat, CenterLon: lon, Count: len(lats)}, nil
}
