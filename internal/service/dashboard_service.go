package service

import (
	"log"

	"github.com/swapdash/telemetry-backend-go/internal/export"
	"github.com/swapdash/telemetry-backend-go/internal/ingest"
	"github.com/swapdash/telemetry-backend-go/internal/models"
	"github.com/swapdash/telemetry-backend-go/internal/pivot"
	"github.com/swapdash/telemetry-backend-go/internal/session"
)

// DashboardService handles business logic between the HTTP handlers and
// the session state.
type DashboardService struct {
	manager        *session.Manager
	toleranceScale float64
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(manager *session.Manager, toleranceScale float64) *DashboardService {
	return &DashboardService{manager: manager, toleranceScale: toleranceScale}
}

// Manager exposes the session registry.
func (s *DashboardService) Manager() *session.Manager { return s.manager }

// LoadResult reports one batch load: which dates landed, which files
// failed, and the refreshed date lists.
type LoadResult struct {
	LoadedDates  []string           `json:"loaded_dates"`
	Failed       []ingest.FileError `json:"failed,omitempty"`
	VisitedDates []string           `json:"visited_dates"`
	ActiveDates  []string           `json:"active_dates"`
}

// LoadDocuments parses a named document set into a session with
// best-effort batch semantics: failures are collected per file and the
// session is updated once, after the whole batch has been parsed.
func (s *DashboardService) LoadDocuments(sessionID string, docs map[string][]byte, order []string) (*LoadResult, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	res := ingest.ParseBatch(docs, order)
	for _, f := range res.Failed {
		log.Printf("[Ingest] rejected %s: %s", f.Name, f.Error)
	}
	sess.AddSnapshots(res.Snapshots)

	return &LoadResult{
		LoadedDates:  res.Dates(),
		Failed:       res.Failed,
		VisitedDates: sess.VisitedDates(),
		ActiveDates:  sess.ActiveDates(),
	}, nil
}

// LoadPaths loads snapshot files from disk into a session, same batch
// semantics as LoadDocuments.
func (s *DashboardService) LoadPaths(sessionID string, paths []string) (*LoadResult, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	res := ingest.LoadBatch(paths)
	for _, f := range res.Failed {
		log.Printf("[Ingest] rejected %s: %s", f.Name, f.Error)
	}
	sess.AddSnapshots(res.Snapshots)

	return &LoadResult{
		LoadedDates:  res.Dates(),
		Failed:       res.Failed,
		VisitedDates: sess.VisitedDates(),
		ActiveDates:  sess.ActiveDates(),
	}, nil
}

// SetToleranceRaw scales raw slider units down to the fraction the
// classifier compares against and reclassifies every loaded date.
func (s *DashboardService) SetToleranceRaw(sessionID string, raw float64) (float64, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return 0, err
	}
	fraction := raw / s.toleranceScale
	sess.SetTolerance(fraction)
	return fraction, nil
}

// TableData is the table collaborator's payload: a fresh row array, the
// grouping field list and the multi-key sort spec. The component must
// not assume retained sort keys across rebuilds, so every call
// reassembles all three.
type TableData struct {
	Rows     []*models.PivotRow `json:"rows"`
	GroupBy  []string           `json:"group_by"`
	SortSpec []pivot.SortTerm   `json:"sort_spec"`
	Groups   []GroupSummary     `json:"groups"`
}

// GroupSummary mirrors one pivot node for clients that render the group
// tree without walking rows.
type GroupSummary struct {
	Key      string         `json:"key"`
	Depth    int            `json:"depth"`
	SOCLost  float64        `json:"soc_lost"`
	Terminal bool           `json:"terminal"`
	Children []GroupSummary `json:"children,omitempty"`
}

func summarize(n *pivot.Node) []GroupSummary {
	children := n.Children()
	out := make([]GroupSummary, 0, len(children))
	for _, c := range children {
		out = append(out, GroupSummary{
			Key:      c.Key(),
			Depth:    c.Depth(),
			SOCLost:  c.Sum(),
			Terminal: c.Terminal(),
			Children: summarize(c),
		})
	}
	return out
}

// BuildTable rebuilds the pivot for a session's current state.
func (s *DashboardService) BuildTable(sessionID string) (*TableData, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	rows, tree := sess.BuildTable()
	return &TableData{
		Rows:     rows,
		GroupBy:  tree.Dimensions(),
		SortSpec: pivot.SortSpec(tree.MaxDepth()),
		Groups:   summarize(tree.Root()),
	}, nil
}

// SelectGroup handles a group click: resolve the path, retain the
// selection and compose the chart payload.
func (s *DashboardService) SelectGroup(sessionID string, path []string) (*session.ChartData, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := sess.SelectGroup(path); err != nil {
		return nil, err
	}
	return sess.ComposeChart()
}

// ExportCSV renders the current selection as the CSV download.
func (s *DashboardService) ExportCSV(sessionID string) ([]byte, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return export.WriteCSV(sess.SelectionRows())
}

// SessionInfo is the session inspection payload.
type SessionInfo struct {
	ID           string   `json:"id"`
	VisitedDates []string `json:"visited_dates"`
	ActiveDates  []string `json:"active_dates"`
	Tolerance    float64  `json:"tolerance"`
	PivotDims    []string `json:"pivot_dimensions"`
	SplitField   string   `json:"split_field"`
}

// Describe snapshots a session's configuration.
func (s *DashboardService) Describe(sessionID string) (*SessionInfo, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionInfo{
		ID:           sess.ID,
		VisitedDates: sess.VisitedDates(),
		ActiveDates:  sess.ActiveDates(),
		Tolerance:    sess.Tolerance(),
		PivotDims:    sess.PivotDimensions(),
		SplitField:   sess.SplitField(),
	}, nil
}

// LoadWatchedFile is the snapshot-directory watcher callback: a single
// file loaded best-effort into the watched session.
func (s *DashboardService) LoadWatchedFile(sessionID, path string) {
	if _, err := s.LoadPaths(sessionID, []string{path}); err != nil {
		log.Printf("[Ingest] watcher load %s: %v", path, err)
	}
}
