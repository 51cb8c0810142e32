package series

import (
	"testing"

	"github.com/swapdash/telemetry-backend-go/internal/models"
)

func fixedSeries(y float64) map[string]models.Series {
	return map[string]models.Series{
		"g": {{X: "2024-05-01", Y: y}},
	}
}

func TestLockerOverlayWinsByKey(t *testing.T) {
	var l Locker
	l.Lock(fixedSeries(10))

	live := map[string]models.Series{
		"g":     {{X: "2024-05-01", Y: 99}},
		"other": {{X: "2024-05-01", Y: 1}},
	}
	out := l.Overlay(live)
	if out["g"][0].Y != 10 {
		t.Fatalf("locked key should override live: %+v", out["g"])
	}
	if out["other"][0].Y != 1 {
		t.Fatalf("live-only key should pass through: %+v", out["other"])
	}
}

func TestLockerClear(t *testing.T) {
	var l Locker
	l.Lock(fixedSeries(10))
	if !l.Locked() {
		t.Fatalf("expected locked")
	}
	l.Clear()
	if l.Locked() {
		t.Fatalf("expected unlocked after clear")
	}
	live := fixedSeries(5)
	out := l.Overlay(live)
	if out["g"][0].Y != 5 {
		t.Fatalf("clear did not restore live data: %+v", out["g"])
	}
}

func TestLockerDeepCopies(t *testing.T) {
	src := fixedSeries(10)
	var l Locker
	l.Lock(src)
	src["g"][0].Y = -1

	out := l.Overlay(map[string]models.Series{})
	if out["g"][0].Y != 10 {
		t.Fatalf("lock shares storage with its source: %+v", out["g"])
	}
	// Mutating the overlay result must not dirty the retained snapshot.
	out["g"][0].Y = -2
	again := l.Overlay(map[string]models.Series{})
	if again["g"][0].Y != 10 {
		t.Fatalf("overlay shares storage with the snapshot: %+v", again["g"])
	}
}

func TestLockerEmptyLockIsNoop(t *testing.T) {
	var l Locker
	l.Lock(nil)
	if l.Locked() {
		t.Fatalf("locking nothing should not activate the override")
	}
}
