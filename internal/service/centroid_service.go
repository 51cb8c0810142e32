package service

import (
	"errors"
	"fmt"

	"github.com/swapdash/telemetry-backend-go/internal/models"
	"github.com/swapdash/telemetry-backend-go/internal/session"
	"github.com/swapdash/telemetry-backend-go/internal/stats"
)

// ErrCentroidNotFound means no active-date centroid carries the
// requested name.
var ErrCentroidNotFound = errors.New("centroid not found")

// CentroidDetail is the detail panel payload for one centroid: totals,
// the hourly and amperage chart breakdowns and a Google Maps link.
// Breakdowns come from the pre-merge pings, which still carry hour and
// amperage.
type CentroidDetail struct {
	Name          string             `json:"name"`
	Type          string             `json:"type"`
	Latitude      float64            `json:"latitude"`
	Longitude     float64            `json:"longitude"`
	GoogleMapsURL string             `json:"google_maps_url"`
	TotalSOCLost  float64            `json:"total_soc_lost"`
	PingCount     int                `json:"ping_count"`
	ByHour        [24]float64        `json:"by_hour"`
	ByAmperage    map[string]float64 `json:"by_amperage"`
	MeanLoss      float64            `json:"mean_loss"`
	MedianLoss    float64            `json:"median_loss"`
	MaxLoss       float64            `json:"max_loss"`
	P90Loss       float64            `json:"p90_loss"`
}

// CentroidService serves the per-centroid detail panel.
type CentroidService struct {
	manager *session.Manager
}

// NewCentroidService creates a new centroid service.
func NewCentroidService(manager *session.Manager) *CentroidService {
	return &CentroidService{manager: manager}
}

// Detail aggregates one centroid's pings across the active dates. The
// lookup key is the centroid's dynamic name, falling back to its static
// name, matching the canonical name-based join used everywhere else.
func (s *CentroidService) Detail(sessionID, name string) (*CentroidDetail, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	detail := &CentroidDetail{
		Name:       name,
		ByAmperage: map[string]float64{"<18A": 0, ">=18A": 0},
	}
	var losses []float64
	found := false

	sess.ActiveSnapshots(func(snaps []*models.Snapshot) {
		for _, snap := range snaps {
			for _, c := range snap.Centroids {
				display := c.DynamicName
				if display == "" {
					display = c.Name
				}
				if display != name {
					continue
				}
				if !found {
					detail.Type = c.Type
					detail.Latitude = c.Latitude
					detail.Longitude = c.Longitude
					found = true
				}
				for _, p := range snap.RawPings {
					if p.CentroidID != c.ID {
						continue
					}
					detail.TotalSOCLost += p.SOCLost
					detail.PingCount++
					losses = append(losses, p.SOCLost)
					if p.Hour >= 0 && p.Hour < 24 {
						detail.ByHour[p.Hour] += p.SOCLost
					}
					detail.ByAmperage[models.AmperageBucket(p.Amperage)] += p.SOCLost
				}
			}
		}
	})

	if !found {
		return nil, fmt.Errorf("%w: %s", ErrCentroidNotFound, name)
	}

	detail.GoogleMapsURL = fmt.Sprintf("https://www.google.com/maps?q=%v,%v", detail.Latitude, detail.Longitude)
	detail.MeanLoss = stats.Mean(losses)
	detail.MedianLoss = stats.Median(losses)
	detail.MaxLoss = stats.Max(losses)
	detail.P90Loss = stats.Quantile(losses, 0.9)
	return detail, nil
}
