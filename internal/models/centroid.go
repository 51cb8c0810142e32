package models

import (
	"encoding/json"
	"fmt"
)

// Centroid types assigned by the tolerance classifier.
const (
	TypeStation    = "station"
	TypeNonStation = "non-station"
)

// StationDistance is one entry of a centroid's nearest-station list.
// The wire format is a two-element array: [name, distance].
type StationDistance struct {
	Name     string
	Distance float64
}

// UnmarshalJSON decodes the ["name", distance] pair form.
func (s *StationDistance) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("closest_stations entry must be an array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("closest_stations entry must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &s.Name); err != nil {
		return fmt.Errorf("closest_stations name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &s.Distance); err != nil {
		return fmt.Errorf("closest_stations distance: %w", err)
	}
	return nil
}

// MarshalJSON emits the ["name", distance] pair form.
func (s StationDistance) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{s.Name, s.Distance})
}

// Centroid is a geolocated cluster: a physical swap station or an
// inferred stopping point.
//
// DynamicName and Type are derived, not wire fields: they are pure
// functions of the nearest-station distance and the session tolerance,
// recomputed on every tolerance change and on snapshot load.
type Centroid struct {
	ID              Label             `json:"id"`
	Name            string            `json:"name"`
	Latitude        float64           `json:"latitude"`
	Longitude       float64           `json:"longitude"`
	ClosestStations []StationDistance `json:"closest_stations"`
	DynamicName     string            `json:"dynamic_name,omitempty"`
	Type            string            `json:"type,omitempty"`
}

// NearestStation returns the head of the pre-sorted nearest-station list.
func (c *Centroid) NearestStation() (StationDistance, bool) {
	if len(c.ClosestStations) == 0 {
		return StationDistance{}, false
	}
	return c.ClosestStations[0], true
}
