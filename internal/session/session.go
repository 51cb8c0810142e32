// Package session owns one dashboard session's state: every loaded
// snapshot, the tolerance, the active date selection and the pivot and
// split configuration. All derived structures are recomputed on each
// triggering change, never patched incrementally.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/swapdash/telemetry-backend-go/internal/classify"
	"github.com/swapdash/telemetry-backend-go/internal/models"
	"github.com/swapdash/telemetry-backend-go/internal/pivot"
	"github.com/swapdash/telemetry-backend-go/internal/series"
)

var (
	// ErrGroupNotFound means a group path no longer resolves, typically
	// a stale selection after a re-group.
	ErrGroupNotFound = errors.New("group not found")

	// ErrUnknownDate means a date toggle referenced a date that was
	// never loaded.
	ErrUnknownDate = errors.New("unknown date")
)

// Selection is the row subset of the last clicked group.
type Selection struct {
	Path       []string
	DefaultKey string
	Rows       []*models.PivotRow
}

// ChartData is the payload the chart collaborator consumes: the active
// dates as labels plus one named, zero-filled, date-sorted series per
// split key (locked keys already overlaid).
type ChartData struct {
	Labels []string                 `json:"labels"`
	Series map[string]models.Series `json:"series"`
}

// Session holds one dashboard's state. All exported methods lock, so a
// multi-snapshot recompute (a tolerance change, say) completes before
// the next action observes the state.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu            sync.Mutex
	maxPivotDepth int
	tolerance     float64
	snapshots     map[string]*models.Snapshot
	visitedDates  []string
	activeDates   []string
	pivotDims     []string
	splitField    string
	selection     *Selection
	current       map[string]models.Series
	locker        series.Locker
}

// New creates an empty session.
func New(id string, tolerance float64, maxPivotDepth int) *Session {
	if maxPivotDepth <= 0 {
		maxPivotDepth = pivot.DefaultMaxDepth
	}
	return &Session{
		ID:            id,
		CreatedAt:     time.Now(),
		maxPivotDepth: maxPivotDepth,
		tolerance:     tolerance,
		snapshots:     make(map[string]*models.Snapshot),
		splitField:    models.SplitNone,
	}
}

// AddSnapshots merges a parsed batch into the session. Each snapshot is
// classified at the current tolerance on the way in (scoped: snapshots
// already loaded are not touched). Re-loading a date replaces that
// date's payload. The date list is published only after the whole batch
// is in, so a multi-file selection never shows a partial state.
func (s *Session) AddSnapshots(snaps []*models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range snaps {
		classify.ClassifySnapshot(snap, s.tolerance)
		if _, seen := s.snapshots[snap.Date]; !seen {
			s.visitedDates = append(s.visitedDates, snap.Date)
		}
		s.snapshots[snap.Date] = snap
	}
	sort.Strings(s.visitedDates)
}

// SetTolerance stores the already-scaled tolerance fraction and
// reclassifies every loaded snapshot. The current chart selection is
// cleared; a locked baseline survives.
func (s *Session) SetTolerance(fraction float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tolerance = fraction
	classify.ClassifyAll(s.snapshots, fraction)
	s.selection = nil
	s.current = nil
}

// SetActiveDates replaces the active date selection. Dates must have
// been loaded.
func (s *Session) SetActiveDates(dates []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range dates {
		if _, ok := s.snapshots[d]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownDate, d)
		}
	}
	s.activeDates = append([]string(nil), dates...)
	sort.Strings(s.activeDates)
	return nil
}

// InvertActiveDates flips every loaded date in or out of the selection.
func (s *Session) InvertActiveDates() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make(map[string]bool, len(s.activeDates))
	for _, d := range s.activeDates {
		active[d] = true
	}
	inverted := make([]string, 0, len(s.visitedDates))
	for _, d := range s.visitedDates {
		if !active[d] {
			inverted = append(inverted, d)
		}
	}
	s.activeDates = inverted
}

// SetPivotDimensions replaces the ordered grouping list. The next table
// build re-groups from scratch.
func (s *Session) SetPivotDimensions(dims []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pivotDims = append([]string(nil), dims...)
}

// SetSplitField selects the series split dimension, applied on the next
// group click.
func (s *Session) SetSplitField(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if field == "" {
		field = models.SplitNone
	}
	s.splitField = field
}

// BuildTable assembles the rows for the active dates, builds the pivot
// tree and returns the sorted rows alongside it.
func (s *Session) BuildTable() ([]*models.PivotRow, *pivot.Tree) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildTableLocked()
}

func (s *Session) buildTableLocked() ([]*models.PivotRow, *pivot.Tree) {
	rows := make([]*models.PivotRow, 0)
	for _, date := range s.activeDates {
		snap := s.snapshots[date]
		for _, p := range snap.Pings {
			row := &models.PivotRow{
				BMS:        p.BMSID,
				Country:    p.Country,
				CentroidID: string(p.CentroidID),
				LastMapped: p.LastMapped,
				Amperage:   models.AmperageBucket(p.Amperage),
				SOCLost:    p.SOCLost,
				Date:       p.Date,
			}
			if c, ok := snap.Centroid(p.CentroidID); ok {
				row.CentroidName = c.DynamicName
				row.CentroidType = c.Type
				row.Latitude = c.Latitude
				row.Longitude = c.Longitude
			}
			rows = append(rows, row)
		}
	}

	tree := pivot.Build(rows, s.pivotDims, s.maxPivotDepth)
	pivot.SortRows(rows, s.maxPivotDepth)
	return rows, tree
}

// SelectGroup resolves a group click: the table is rebuilt against the
// current state, the path is resolved to a node, and the subtree's rows
// become the chart selection.
func (s *Session) SelectGroup(path []string) (*Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, tree := s.buildTableLocked()
	node := tree.Find(path)
	if node == nil {
		return nil, fmt.Errorf("%w: %v", ErrGroupNotFound, path)
	}

	defaultKey := node.Key()
	if defaultKey == "" && len(path) > 0 {
		defaultKey = path[len(path)-1]
	}
	s.selection = &Selection{
		Path:       append([]string(nil), path...),
		DefaultKey: defaultKey,
		Rows:       node.Rows(),
	}
	return s.selection, nil
}

// ComposeChart recomputes the series for the current selection and
// applies the locked overlay. The live result (pre-overlay) is retained
// as the lock candidate.
func (s *Session) ComposeChart() (*ChartData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selection == nil {
		return nil, series.ErrEmptySelection
	}
	live, err := series.Compose(s.selection.Rows, s.splitField, s.activeDates, s.selection.DefaultKey)
	if err != nil {
		return nil, err
	}

	merged := s.locker.Overlay(live)
	s.current = merged
	return &ChartData{
		Labels: append([]string(nil), s.activeDates...),
		Series: merged,
	}, nil
}

// LockSeries freezes the last composed series set as the baseline.
func (s *Session) LockSeries() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locker.Lock(s.current)
}

// ClearLockedSeries removes the baseline override.
func (s *Session) ClearLockedSeries() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locker.Clear()
}

// SelectionRows returns the last clicked group's rows, or nil when
// nothing is selected.
func (s *Session) SelectionRows() []*models.PivotRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection == nil {
		return nil
	}
	return s.selection.Rows
}

// VisitedDates lists every loaded date, ascending.
func (s *Session) VisitedDates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.visitedDates...)
}

// ActiveDates lists the toggled-in dates, ascending.
func (s *Session) ActiveDates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.activeDates...)
}

// Tolerance returns the current tolerance fraction.
func (s *Session) Tolerance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tolerance
}

// PivotDimensions returns the current grouping order.
func (s *Session) PivotDimensions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.pivotDims...)
}

// SplitField returns the current series split dimension.
func (s *Session) SplitField() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.splitField
}

// MaxPivotDepth returns the sort-key slot count of this session.
func (s *Session) MaxPivotDepth() int {
	return s.maxPivotDepth
}

// ActiveSnapshots hands the active dates' snapshots to a reader in
// ascending date order, under the session lock.
func (s *Session) ActiveSnapshots(fn func(snaps []*models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snaps := make([]*models.Snapshot, 0, len(s.activeDates))
	for _, d := range s.activeDates {
		snaps = append(snaps, s.snapshots[d])
	}
	fn(snaps)
}
