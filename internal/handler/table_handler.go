package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/swapdash/telemetry-backend-go/internal/series"
	"github.com/swapdash/telemetry-backend-go/internal/service"
	"github.com/swapdash/telemetry-backend-go/pkg/response"
)

// TableHandler serves the table collaborator and the chart selection.
type TableHandler struct {
	dashboard *service.DashboardService
}

// NewTableHandler creates a new table handler.
func NewTableHandler(dashboard *service.DashboardService) *TableHandler {
	return &TableHandler{dashboard: dashboard}
}

// GetTable handles GET /api/v1/sessions/:id/table — a fresh row array
// with propagated sort keys, the grouping field list and the multi-key
// sort spec, rebuilt on every call.
func (h *TableHandler) GetTable(c *gin.Context) {
	table, err := h.dashboard.BuildTable(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, table)
}

type selectRequest struct {
	Path []string `json:"path" binding:"required,min=1"`
}

// SelectGroup handles POST /api/v1/sessions/:id/select — a group
// click: the group's subtree rows become the chart selection and the
// composed series come back as the chart payload.
func (h *TableHandler) SelectGroup(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid select body: "+err.Error())
		return
	}
	chart, err := h.dashboard.SelectGroup(c.Param("id"), req.Path)
	if err != nil {
		if errors.Is(err, series.ErrEmptySelection) {
			response.Notice(c, "selection contains no rows")
			return
		}
		fail(c, err)
		return
	}
	response.Success(c, chart)
}

// LockSeries handles POST /api/v1/sessions/:id/series/lock — freezes
// the last composed series set as the comparison baseline.
func (h *TableHandler) LockSeries(c *gin.Context) {
	sess, err := h.dashboard.Manager().Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	sess.LockSeries()
	response.Success(c, gin.H{"locked": true})
}

// ClearLockedSeries handles DELETE /api/v1/sessions/:id/series/lock
func (h *TableHandler) ClearLockedSeries(c *gin.Context) {
	sess, err := h.dashboard.Manager().Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	sess.ClearLockedSeries()
	response.Success(c, gin.H{"locked": false})
}
