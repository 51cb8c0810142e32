package service

import (
	"errors"
	"testing"
)

func TestCentroidDetail(t *testing.T) {
	svc, id := newService(t)
	loadFixture(t, svc, id)
	centroids := NewCentroidService(svc.Manager())

	detail, err := centroids.Detail(id, "StationA")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.TotalSOCLost != 8 || detail.PingCount != 2 {
		t.Fatalf("totals = %v over %d pings", detail.TotalSOCLost, detail.PingCount)
	}
	// Breakdowns come from the raw pings, which keep hour and amperage.
	if detail.ByHour[1] != 5 || detail.ByHour[14] != 3 {
		t.Fatalf("by hour = %v", detail.ByHour)
	}
	if detail.ByAmperage["<18A"] != 5 || detail.ByAmperage[">=18A"] != 3 {
		t.Fatalf("by amperage = %v", detail.ByAmperage)
	}
	if detail.MeanLoss != 4 || detail.MaxLoss != 5 || detail.MedianLoss != 4 {
		t.Fatalf("stats = %v/%v/%v", detail.MeanLoss, detail.MedianLoss, detail.MaxLoss)
	}
	if detail.GoogleMapsURL != "https://www.google.com/maps?q=12.9,77.6" {
		t.Fatalf("maps url = %q", detail.GoogleMapsURL)
	}
}

func TestCentroidDetailStaticNameFallback(t *testing.T) {
	svc, id := newService(t)
	loadFixture(t, svc, id)
	centroids := NewCentroidService(svc.Manager())

	// At a tight tolerance the centroid is addressed by its static name.
	if _, err := svc.SetToleranceRaw(id, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := centroids.Detail(id, "StationA"); !errors.Is(err, ErrCentroidNotFound) {
		t.Fatalf("stale dynamic name should miss, got %v", err)
	}
	detail, err := centroids.Detail(id, "Stop 7")
	if err != nil {
		t.Fatalf("detail by static name: %v", err)
	}
	if detail.TotalSOCLost != 8 {
		t.Fatalf("total = %v", detail.TotalSOCLost)
	}
}

func TestCentroidDetailNotFound(t *testing.T) {
	svc, id := newService(t)
	loadFixture(t, svc, id)
	centroids := NewCentroidService(svc.Manager())
	if _, err := centroids.Detail(id, "Atlantis"); !errors.Is(err, ErrCentroidNotFound) {
		t.Fatalf("expected ErrCentroidNotFound, got %v", err)
	}
}
