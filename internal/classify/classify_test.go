package classify

import (
	"errors"
	"testing"

	"github.com/swapdash/telemetry-backend-go/internal/models"
)

func centroid(dist float64) *models.Centroid {
	return &models.Centroid{
		ID:   "c1",
		Name: "Roadside Stop 4",
		ClosestStations: []models.StationDistance{
			{Name: "StationA", Distance: dist},
			{Name: "StationB", Distance: dist * 10},
		},
	}
}

func TestClassifyWithinTolerance(t *testing.T) {
	c := centroid(0.00002)
	if err := Classify(c, 0.00005); err != nil {
		t.Fatalf("classify: %v", err)
	}
	if c.Type != models.TypeStation {
		t.Fatalf("type = %q, want station", c.Type)
	}
	if c.DynamicName != "StationA" {
		t.Fatalf("dynamic name = %q, want StationA", c.DynamicName)
	}
}

func TestClassifyOutsideTolerance(t *testing.T) {
	c := centroid(0.00002)
	if err := Classify(c, 0.00001); err != nil {
		t.Fatalf("classify: %v", err)
	}
	if c.Type != models.TypeNonStation {
		t.Fatalf("type = %q, want non-station", c.Type)
	}
	if c.DynamicName != "Roadside Stop 4" {
		t.Fatalf("dynamic name = %q, want static name", c.DynamicName)
	}
}

func TestClassifyBoundaryIsStrict(t *testing.T) {
	c := centroid(0.00005)
	if err := Classify(c, 0.00005); err != nil {
		t.Fatalf("classify: %v", err)
	}
	if c.Type != models.TypeNonStation {
		t.Fatalf("distance equal to tolerance must stay non-station, got %q", c.Type)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	const d = 0.00003
	wasStation := false
	for _, tol := range []float64{0.00001, 0.00002, 0.00003, 0.00004, 0.00005} {
		c := centroid(d)
		if err := Classify(c, tol); err != nil {
			t.Fatalf("classify at %v: %v", tol, err)
		}
		isStation := c.Type == models.TypeStation
		if wasStation && !isStation {
			t.Fatalf("raising tolerance to %v reverted a station", tol)
		}
		wasStation = wasStation || isStation
	}
	if !wasStation {
		t.Fatalf("centroid never became a station below max tolerance")
	}
}

func TestClassifyMissingProximityData(t *testing.T) {
	c := &models.Centroid{ID: "c9", Name: "Orphan"}
	err := Classify(c, 0.001)
	if !errors.Is(err, ErrMissingProximityData) {
		t.Fatalf("expected ErrMissingProximityData, got %v", err)
	}
	if c.DynamicName != "Orphan" || c.Type != models.TypeNonStation {
		t.Fatalf("fallback not applied: %q / %q", c.DynamicName, c.Type)
	}
}

func TestClassifySnapshotScoped(t *testing.T) {
	touched := &models.Snapshot{
		Date:      "2024-05-02",
		Centroids: map[string]*models.Centroid{"c1": centroid(0.00002)},
	}
	untouched := centroid(0.00002)
	untouched.DynamicName = "frozen"
	untouched.Type = models.TypeStation

	ClassifySnapshot(touched, 0.00005)
	if touched.Centroids["c1"].Type != models.TypeStation {
		t.Fatalf("snapshot centroid not classified")
	}
	// A scoped run never reaches other snapshots' centroids.
	if untouched.DynamicName != "frozen" {
		t.Fatalf("scoped classify touched another snapshot")
	}
}

func TestClassifyAll(t *testing.T) {
	snaps := map[string]*models.Snapshot{
		"2024-05-01": {Date: "2024-05-01", Centroids: map[string]*models.Centroid{"a": centroid(0.00002)}},
		"2024-05-02": {Date: "2024-05-02", Centroids: map[string]*models.Centroid{"b": centroid(0.009)}},
	}
	ClassifyAll(snaps, 0.00005)
	if snaps["2024-05-01"].Centroids["a"].Type != models.TypeStation {
		t.Fatalf("first date not reclassified")
	}
	if snaps["2024-05-02"].Centroids["b"].Type != models.TypeNonStation {
		t.Fatalf("second date not reclassified")
	}
}
