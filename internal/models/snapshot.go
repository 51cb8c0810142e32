package models

// Snapshot is one calendar date's loaded payload.
//
// RawPings keeps the pre-merge records for the per-centroid hour and
// amperage breakdowns; Pings holds the merged records the table and
// series run over. A snapshot is never removed within a session, only
// toggled in and out of the active date selection.
type Snapshot struct {
	Date      string
	Centroids map[string]*Centroid
	RawPings  []Ping
	Pings     []Ping
}

// Centroid looks up a centroid of this snapshot by its id.
func (s *Snapshot) Centroid(id Label) (*Centroid, bool) {
	c, ok := s.Centroids[string(id)]
	return c, ok
}
