package ingest

import (
	"github.com/swapdash/telemetry-backend-go/internal/models"
)

// Merge deduplicates raw pings of one snapshot by their group key (every
// field except hour, amperage and soc_lost), summing soc_lost across
// duplicates. The first member of each group supplies the kept fields;
// hour and amperage are meaningless after summing and are zeroed.
//
// Merge is idempotent: an already-merged set has one member per group
// key, so running it again yields an equal set. Records with zero loss
// are kept — a visited centroid with no loss is still a visit. Output
// order is unspecified; the table re-sorts downstream.
func Merge(raw []models.Ping) []models.Ping {
	grouped := make(map[string]*models.Ping, len(raw))
	order := make([]string, 0, len(raw))

	for _, p := range raw {
		key := p.GroupKey()
		if m, ok := grouped[key]; ok {
			m.SOCLost += p.SOCLost
			continue
		}
		merged := p
		merged.Hour = 0
		merged.Amperage = ""
		grouped[key] = &merged
		order = append(order, key)
	}

	out := make([]models.Ping, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	return out
}

// TotalSOCLost sums the loss metric over a ping set. Merge conserves
// this total.
func TotalSOCLost(pings []models.Ping) float64 {
	var sum float64
	for _, p := range pings {
		sum += p.SOCLost
	}
	return sum
}
