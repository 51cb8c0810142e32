// Package classify assigns centroids their dynamic display name and
// station/non-station type from the nearest-station distance and the
// session's distance tolerance.
package classify

import (
	"errors"
	"log"

	"github.com/swapdash/telemetry-backend-go/internal/models"
)

// ErrMissingProximityData marks a centroid without nearest-station data.
// The centroid keeps its static name and is typed non-station; this is a
// data-quality warning, not a fatal condition.
var ErrMissingProximityData = errors.New("missing proximity data")

// Classify sets c.DynamicName and c.Type for the given tolerance
// fraction. The comparison is strictly less-than: a centroid whose
// nearest-station distance equals the tolerance stays a non-station.
func Classify(c *models.Centroid, tolerance float64) error {
	nearest, ok := c.NearestStation()
	if !ok {
		c.DynamicName = c.Name
		c.Type = models.TypeNonStation
		return ErrMissingProximityData
	}
	if nearest.Distance < tolerance {
		c.DynamicName = nearest.Name
		c.Type = models.TypeStation
	} else {
		c.DynamicName = c.Name
		c.Type = models.TypeNonStation
	}
	return nil
}

// ClassifySnapshot reclassifies one snapshot's centroids. Used on load
// so snapshots already classified at the current tolerance are not
// touched again as more dates accumulate.
func ClassifySnapshot(snap *models.Snapshot, tolerance float64) {
	for _, c := range snap.Centroids {
		if err := Classify(c, tolerance); err != nil {
			log.Printf("[Classify] centroid %s (%s): %v, keeping static name", c.ID, snap.Date, err)
		}
	}
}

// ClassifyAll reclassifies every loaded snapshot. Used on tolerance
// change, which invalidates all previous classifications at once.
func ClassifyAll(snapshots map[string]*models.Snapshot, tolerance float64) {
	for _, snap := range snapshots {
		ClassifySnapshot(snap, tolerance)
	}
}
