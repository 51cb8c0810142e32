package session

import (
	"errors"
	"testing"

	"github.com/swapdash/telemetry-backend-go/internal/models"
	"github.com/swapdash/telemetry-backend-go/internal/series"
)

func snapshot(date string, stationDist float64, pings ...models.Ping) *models.Snapshot {
	for i := range pings {
		pings[i].Date = date
	}
	return &models.Snapshot{
		Date: date,
		Centroids: map[string]*models.Centroid{
			"c1": {
				ID:       "c1",
				Name:     "Stop 7",
				Latitude: 12.9, Longitude: 77.6,
				ClosestStations: []models.StationDistance{{Name: "StationA", Distance: stationDist}},
			},
		},
		Pings: pings,
	}
}

func ping(bms string, soc float64) models.Ping {
	return models.Ping{
		BMSID:         bms,
		Country:       "IN",
		CentroidID:    "c1",
		SOCLost:       soc,
		LastMapped:    "m",
		LastSwapTime:  "Unknown",
		LastSwapState: "done",
	}
}

func newSession() *Session {
	return New("test", 0.00005, 0)
}

func TestAddSnapshotsClassifiesOnLoad(t *testing.T) {
	s := newSession()
	s.AddSnapshots([]*models.Snapshot{snapshot("2024-05-01", 0.00002, ping("b1", 5))})

	if dates := s.VisitedDates(); len(dates) != 1 || dates[0] != "2024-05-01" {
		t.Fatalf("visited = %v", dates)
	}
	// Loading never auto-activates a date.
	if len(s.ActiveDates()) != 0 {
		t.Fatalf("new dates must not be active: %v", s.ActiveDates())
	}

	if err := s.SetActiveDates([]string{"2024-05-01"}); err != nil {
		t.Fatalf("activate: %v", err)
	}
	rows, _ := s.BuildTable()
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].CentroidName != "StationA" || rows[0].CentroidType != models.TypeStation {
		t.Fatalf("centroid not classified into row: %+v", rows[0])
	}
}

func TestAddSnapshotsOverwritesDate(t *testing.T) {
	s := newSession()
	s.AddSnapshots([]*models.Snapshot{snapshot("2024-05-01", 0.00002, ping("b1", 5))})
	s.AddSnapshots([]*models.Snapshot{snapshot("2024-05-01", 0.00002, ping("b2", 9))})

	if dates := s.VisitedDates(); len(dates) != 1 {
		t.Fatalf("re-load duplicated the date: %v", dates)
	}
	if err := s.SetActiveDates([]string{"2024-05-01"}); err != nil {
		t.Fatal(err)
	}
	rows, _ := s.BuildTable()
	if len(rows) != 1 || rows[0].SOCLost != 9 {
		t.Fatalf("re-load did not replace the payload: %+v", rows)
	}
}

func TestSetActiveDatesRejectsUnknown(t *testing.T) {
	s := newSession()
	err := s.SetActiveDates([]string{"2024-05-09"})
	if !errors.Is(err, ErrUnknownDate) {
		t.Fatalf("expected ErrUnknownDate, got %v", err)
	}
}

func TestInvertActiveDates(t *testing.T) {
	s := newSession()
	s.AddSnapshots([]*models.Snapshot{
		snapshot("2024-05-01", 0.00002, ping("b1", 1)),
		snapshot("2024-05-02", 0.00002, ping("b1", 2)),
		snapshot("2024-05-03", 0.00002, ping("b1", 3)),
	})
	if err := s.SetActiveDates([]string{"2024-05-02"}); err != nil {
		t.Fatal(err)
	}
	s.InvertActiveDates()
	got := s.ActiveDates()
	if len(got) != 2 || got[0] != "2024-05-01" || got[1] != "2024-05-03" {
		t.Fatalf("inverted = %v", got)
	}
	s.InvertActiveDates()
	if got = s.ActiveDates(); len(got) != 1 || got[0] != "2024-05-02" {
		t.Fatalf("double inversion = %v", got)
	}
}

func TestSetToleranceReclassifiesAndClearsSelection(t *testing.T) {
	s := newSession()
	s.AddSnapshots([]*models.Snapshot{snapshot("2024-05-01", 0.00002, ping("b1", 5))})
	if err := s.SetActiveDates([]string{"2024-05-01"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SelectGroup(nil); err != nil {
		t.Fatalf("select: %v", err)
	}

	s.SetTolerance(0.00001)
	if s.SelectionRows() != nil {
		t.Fatalf("tolerance change must clear the chart selection")
	}
	rows, _ := s.BuildTable()
	if rows[0].CentroidType != models.TypeNonStation || rows[0].CentroidName != "Stop 7" {
		t.Fatalf("tightened tolerance did not reclassify: %+v", rows[0])
	}

	s.SetTolerance(0.0001)
	rows, _ = s.BuildTable()
	if rows[0].CentroidType != models.TypeStation {
		t.Fatalf("loosened tolerance did not reclassify: %+v", rows[0])
	}
}

func TestSelectGroupAndComposeChart(t *testing.T) {
	s := newSession()
	s.AddSnapshots([]*models.Snapshot{
		snapshot("2024-05-01", 0.00002, ping("b1", 5), ping("b2", 2)),
		snapshot("2024-05-02", 0.00002, ping("b1", 3)),
	})
	if err := s.SetActiveDates([]string{"2024-05-01", "2024-05-02"}); err != nil {
		t.Fatal(err)
	}
	s.SetPivotDimensions([]string{models.DimCountry})

	sel, err := s.SelectGroup([]string{"IN"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.DefaultKey != "IN" || len(sel.Rows) != 3 {
		t.Fatalf("selection = %+v", sel)
	}

	chart, err := s.ComposeChart()
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(chart.Labels) != 2 {
		t.Fatalf("labels = %v", chart.Labels)
	}
	got := chart.Series["IN"]
	if len(got) != 2 || got[0].Y != 7 || got[1].Y != 3 {
		t.Fatalf("series = %+v", got)
	}
}

func TestSelectGroupStalePath(t *testing.T) {
	s := newSession()
	s.AddSnapshots([]*models.Snapshot{snapshot("2024-05-01", 0.00002, ping("b1", 5))})
	if err := s.SetActiveDates([]string{"2024-05-01"}); err != nil {
		t.Fatal(err)
	}
	s.SetPivotDimensions([]string{models.DimCountry})
	if _, err := s.SelectGroup([]string{"ZZ"}); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestComposeChartWithoutSelection(t *testing.T) {
	s := newSession()
	if _, err := s.ComposeChart(); !errors.Is(err, series.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestLockSurvivesToleranceChange(t *testing.T) {
	s := newSession()
	s.AddSnapshots([]*models.Snapshot{snapshot("2024-05-01", 0.00002, ping("b1", 5))})
	if err := s.SetActiveDates([]string{"2024-05-01"}); err != nil {
		t.Fatal(err)
	}
	s.SetPivotDimensions([]string{models.DimCountry})
	if _, err := s.SelectGroup([]string{"IN"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ComposeChart(); err != nil {
		t.Fatal(err)
	}
	s.LockSeries()

	s.SetTolerance(0.00001)
	if _, err := s.SelectGroup([]string{"IN"}); err != nil {
		t.Fatal(err)
	}
	chart, err := s.ComposeChart()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := chart.Series["IN"]; !ok {
		t.Fatalf("locked baseline lost across tolerance change: %v", chart.Series)
	}

	s.ClearLockedSeries()
	if _, err := s.ComposeChart(); err != nil {
		t.Fatalf("compose after clear: %v", err)
	}
}

func TestSplitFieldSeries(t *testing.T) {
	s := newSession()
	kePing := ping("b2", 2)
	kePing.Country = "KE"
	s.AddSnapshots([]*models.Snapshot{snapshot("2024-05-01", 0.00002, ping("b1", 5), kePing)})
	if err := s.SetActiveDates([]string{"2024-05-01"}); err != nil {
		t.Fatal(err)
	}
	s.SetSplitField(models.DimCountry)
	if _, err := s.SelectGroup(nil); err != nil {
		t.Fatal(err)
	}
	chart, err := s.ComposeChart()
	if err != nil {
		t.Fatal(err)
	}
	if len(chart.Series) != 2 {
		t.Fatalf("expected one series per country, got %d", len(chart.Series))
	}
}

func TestManager(t *testing.T) {
	m := NewManager(0.00005, 6)
	a := m.Create()
	b := m.Create()
	if a.ID == b.ID {
		t.Fatalf("session ids collide")
	}
	got, err := m.Get(a.ID)
	if err != nil || got != a {
		t.Fatalf("get: %v", err)
	}
	if _, err := m.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if ids := m.IDs(); len(ids) != 2 {
		t.Fatalf("ids = %v", ids)
	}
}
