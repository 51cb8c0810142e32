// Package export renders the selected group as the dashboard's CSV
// download: one row per unique centroid with its total leakage and a
// Google Maps link.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/swapdash/telemetry-backend-go/internal/models"
	"github.com/swapdash/telemetry-backend-go/internal/series"
)

// header matches the columns the dashboard's download button produced.
var header = []string{"centroid_name", "total_leakage", "latitude", "longitude", "google_maps_link"}

// centroidTotal accumulates one output row. Centroids are keyed by name
// across snapshots; ids are not stable between dates.
type centroidTotal struct {
	name     string
	total    float64
	latitude float64
	longitud float64
}

// WriteCSV renders the selection. An empty selection returns
// series.ErrEmptySelection so the caller can show a notice instead of
// producing an empty file.
func WriteCSV(rows []*models.PivotRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, series.ErrEmptySelection
	}

	totals := make(map[string]*centroidTotal)
	order := make([]string, 0)
	for _, r := range rows {
		name := r.CentroidName
		if name == "" {
			name = r.CentroidID
		}
		t, ok := totals[name]
		if !ok {
			t = &centroidTotal{name: name, latitude: r.Latitude, longitud: r.Longitude}
			totals[name] = t
			order = append(order, name)
		}
		t.total += r.SOCLost
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, name := range order {
		t := totals[name]
		link := fmt.Sprintf("https://www.google.com/maps?q=%v,%v", t.latitude, t.longitud)
		record := []string{
			t.name,
			fmt.Sprintf("%g", t.total),
			fmt.Sprintf("%g", t.latitude),
			fmt.Sprintf("%g", t.longitud),
			link,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
