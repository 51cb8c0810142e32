package series

import "github.com/swapdash/telemetry-backend-go/internal/models"

// Locker retains a frozen snapshot of a computed series set. While
// locked, keys present in the snapshot override live recomputation;
// live entries fill in any keys the lock does not carry. This lets a
// user freeze one selection's trend as a baseline while exploring other
// groups.
type Locker struct {
	locked map[string]models.Series
}

// Lock freezes a deep copy of the given series set. Locking nothing is
// a no-op.
func (l *Locker) Lock(current map[string]models.Series) {
	if len(current) == 0 {
		return
	}
	l.locked = make(map[string]models.Series, len(current))
	for key, s := range current {
		l.locked[key] = s.Clone()
	}
}

// Clear removes the override entirely.
func (l *Locker) Clear() {
	l.locked = nil
}

// Locked reports whether an override is active.
func (l *Locker) Locked() bool {
	return l.locked != nil
}

// Overlay merges the locked snapshot over a live series set: locked
// entries win by exact key match. The inputs are not mutated.
func (l *Locker) Overlay(live map[string]models.Series) map[string]models.Series {
	if l.locked == nil {
		return live
	}
	out := make(map[string]models.Series, len(live)+len(l.locked))
	for key, s := range live {
		out[key] = s
	}
	for key, s := range l.locked {
		out[key] = s.Clone()
	}
	return out
}
