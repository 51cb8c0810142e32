package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/swapdash/telemetry-backend-go/internal/service"
	"github.com/swapdash/telemetry-backend-go/pkg/response"
)

// CentroidHandler serves the centroid detail panel.
type CentroidHandler struct {
	centroids *service.CentroidService
}

// NewCentroidHandler creates a new centroid handler.
func NewCentroidHandler(centroids *service.CentroidService) *CentroidHandler {
	return &CentroidHandler{centroids: centroids}
}

// Detail handles GET /api/v1/sessions/:id/centroids/:name — totals,
// hourly and amperage breakdowns and summary stats for one centroid
// across the active dates.
func (h *CentroidHandler) Detail(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.BadRequest(c, "Centroid name is required")
		return
	}
	detail, err := h.centroids.Detail(c.Param("id"), name)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, detail)
}
