package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/swapdash/telemetry-backend-go/internal/service"
	"github.com/swapdash/telemetry-backend-go/pkg/response"
)

// MapHandler serves the map collaborator.
type MapHandler struct {
	maps *service.MapService
}

// NewMapHandler creates a new map handler.
func NewMapHandler(maps *service.MapService) *MapHandler {
	return &MapHandler{maps: maps}
}

// Markers handles GET /api/v1/sessions/:id/map/markers — one marker per
// unique centroid across the active dates. Optional lat/lon/radius
// query parameters restrict the result to a great-circle radius in
// meters.
func (h *MapHandler) Markers(c *gin.Context) {
	var lat, lon, radius float64
	var err error

	if v := c.Query("radius"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 {
			response.BadRequest(c, "Invalid radius parameter")
			return
		}
		lat, err = strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil {
			response.BadRequest(c, "Invalid lat parameter")
			return
		}
		lon, err = strconv.ParseFloat(c.Query("lon"), 64)
		if err != nil {
			response.BadRequest(c, "Invalid lon parameter")
			return
		}
	}

	markers, err := h.maps.Markers(c.Param("id"), lat, lon, radius)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"markers": markers, "count": len(markers)})
}

// SelectionBounds handles GET /api/v1/sessions/:id/map/bounds — the
// fly-to rectangle framing the current group selection's centroids.
func (h *MapHandler) SelectionBounds(c *gin.Context) {
	bounds, err := h.maps.SelectionBounds(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, bounds)
}
