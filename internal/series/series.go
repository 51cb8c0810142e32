// Package series turns a selected row subset into the chart's named
// time series, zero-filled across the active dates, with support for
// freezing a computed set as a comparison baseline.
package series

import (
	"errors"
	"sort"

	"github.com/swapdash/telemetry-backend-go/internal/models"
)

// ErrEmptySelection marks a compose call over zero rows. The caller
// shows a notice; nothing is recomputed.
var ErrEmptySelection = errors.New("empty selection")

// Compose builds one series per split key from the selected rows.
//
// With splitField "none" (or an unknown field name) every row collapses
// to defaultKey, normally the clicked group's label. Each key's series
// gets a zero-valued point for every active date before accumulation,
// so the chart spans the full date range instead of interpolating over
// gaps. Points are sorted ascending by date; lexicographic ISO-date
// order is correct here.
func Compose(rows []*models.PivotRow, splitField string, activeDates []string, defaultKey string) (map[string]models.Series, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySelection
	}

	split := splitField
	if split != models.SplitNone && !models.KnownDimension(split) {
		split = models.SplitNone
	}

	acc := make(map[string]map[string]float64)
	for _, r := range rows {
		key := defaultKey
		if split != models.SplitNone {
			key, _ = r.Field(split)
		}
		points, ok := acc[key]
		if !ok {
			points = make(map[string]float64, len(activeDates))
			for _, d := range activeDates {
				points[d] = 0
			}
			acc[key] = points
		}
		points[r.Date] += r.SOCLost
	}

	out := make(map[string]models.Series, len(acc))
	for key, points := range acc {
		s := make(models.Series, 0, len(points))
		for x, y := range points {
			s = append(s, models.SeriesPoint{X: x, Y: y})
		}
		sort.Slice(s, func(i, j int) bool { return s[i].X < s[j].X })
		out[key] = s
	}
	return out, nil
}
