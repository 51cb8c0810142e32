package models

// SeriesPoint is one chart point: an ISO date (or category label) and an
// accumulated SOC-loss value.
type SeriesPoint struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// Series is an x-ascending sequence of points for one split key.
type Series []SeriesPoint

// Clone returns an independent copy, used when freezing a locked series
// so later recomputation cannot mutate the retained snapshot.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Total sums the series values.
func (s Series) Total() float64 {
	var sum float64
	for _, p := range s {
		sum += p.Y
	}
	return sum
}
