package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/swapdash/telemetry-backend-go/internal/models"
)

// ErrMalformedSnapshot marks a snapshot file that cannot be used: invalid
// JSON or missing required fields. The file is rejected; siblings in the
// same batch are still attempted.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// snapshotFile is the wire shape of one daily snapshot document.
type snapshotFile struct {
	Date      string            `json:"date"`
	Centroids []models.Centroid `json:"centroids"`
	Pings     []models.Ping     `json:"pings"`
}

// ParseSnapshot decodes and validates one snapshot document, injects the
// snapshot date into every ping and merges the ping set.
func ParseSnapshot(data []byte) (*models.Snapshot, error) {
	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if file.Date == "" {
		return nil, fmt.Errorf("%w: missing date", ErrMalformedSnapshot)
	}
	if file.Centroids == nil {
		return nil, fmt.Errorf("%w: missing centroids", ErrMalformedSnapshot)
	}
	if file.Pings == nil {
		return nil, fmt.Errorf("%w: missing pings", ErrMalformedSnapshot)
	}

	snap := &models.Snapshot{
		Date:      file.Date,
		Centroids: make(map[string]*models.Centroid, len(file.Centroids)),
		RawPings:  make([]models.Ping, 0, len(file.Pings)),
	}

	for i := range file.Centroids {
		c := file.Centroids[i]
		snap.Centroids[string(c.ID)] = &c
	}

	for _, p := range file.Pings {
		p.Date = file.Date
		snap.RawPings = append(snap.RawPings, p)
	}
	snap.Pings = Merge(snap.RawPings)

	return snap, nil
}

// LoadFile reads and parses one snapshot file from disk.
func LoadFile(path string) (*models.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	snap, err := ParseSnapshot(raw)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return snap, nil
}

// FileError is one failed entry of a best-effort batch load.
type FileError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// BatchResult reports the outcome of loading one multi-file selection.
// Snapshots holds the successfully parsed payloads in input order;
// Failed lists rejected files without aborting the batch.
type BatchResult struct {
	Snapshots []*models.Snapshot
	Failed    []FileError
}

// Dates lists the snapshot dates loaded by the batch.
func (r *BatchResult) Dates() []string {
	dates := make([]string, 0, len(r.Snapshots))
	for _, s := range r.Snapshots {
		dates = append(dates, s.Date)
	}
	return dates
}

// ParseBatch parses a set of named documents with best-effort semantics:
// a malformed document fails that entry only.
func ParseBatch(docs map[string][]byte, order []string) *BatchResult {
	res := &BatchResult{}
	for _, name := range order {
		snap, err := ParseSnapshot(docs[name])
		if err != nil {
			res.Failed = append(res.Failed, FileError{Name: name, Error: err.Error()})
			continue
		}
		res.Snapshots = append(res.Snapshots, snap)
	}
	return res
}

// LoadBatch reads a set of snapshot files with best-effort semantics.
func LoadBatch(paths []string) *BatchResult {
	res := &BatchResult{}
	for _, path := range paths {
		snap, err := LoadFile(path)
		if err != nil {
			res.Failed = append(res.Failed, FileError{Name: path, Error: err.Error()})
			continue
		}
		res.Snapshots = append(res.Snapshots, snap)
	}
	return res
}
