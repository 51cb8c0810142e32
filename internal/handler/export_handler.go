package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swapdash/telemetry-backend-go/internal/series"
	"github.com/swapdash/telemetry-backend-go/internal/service"
	"github.com/swapdash/telemetry-backend-go/pkg/response"
)

// ExportHandler serves the CSV download of the current selection.
type ExportHandler struct {
	dashboard *service.DashboardService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(dashboard *service.DashboardService) *ExportHandler {
	return &ExportHandler{dashboard: dashboard}
}

// CSV handles GET /api/v1/sessions/:id/export/csv — one row per unique
// centroid in the selected group. Exporting with nothing selected is a
// notice, not a failure.
func (h *ExportHandler) CSV(c *gin.Context) {
	data, err := h.dashboard.ExportCSV(c.Param("id"))
	if err != nil {
		if errors.Is(err, series.ErrEmptySelection) {
			response.Notice(c, "nothing selected: no rows to export")
			return
		}
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="selection.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
