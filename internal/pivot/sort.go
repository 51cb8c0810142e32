package pivot

import (
	"sort"

	"github.com/swapdash/telemetry-backend-go/internal/models"
)

// SortTerm is one column of the multi-key sort spec handed to the table
// component: the 1-indexed sort-key slot and the direction.
type SortTerm struct {
	Slot int    `json:"slot"`
	Dir  string `json:"dir"`
}

// SortSpec builds the descending multi-key spec in the table
// component's convention: deepest slot listed first, with the last term
// taking highest priority. The effective order is therefore outermost
// slot primary, deeper slots breaking ties inside each group.
func SortSpec(maxDepth int) []SortTerm {
	spec := make([]SortTerm, 0, maxDepth)
	for slot := maxDepth; slot >= 1; slot-- {
		spec = append(spec, SortTerm{Slot: slot, Dir: "desc"})
	}
	return spec
}

// SortRows applies the multi-key ordering in place: a stable
// lexicographic sort on the precomputed key strings, outermost slot
// first. Rows of one group stay contiguous because they share every
// ancestor key, and groups land in descending aggregate order at every
// nesting level.
func SortRows(rows []*models.PivotRow, maxDepth int) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].SortKeys, rows[j].SortKeys
		for slot := 0; slot < maxDepth; slot++ {
			if slot >= len(a) || slot >= len(b) {
				break
			}
			if a[slot] != b[slot] {
				return a[slot] > b[slot]
			}
		}
		return false
	})
}
