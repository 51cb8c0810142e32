package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/swapdash/telemetry-backend-go/internal/service"
	"github.com/swapdash/telemetry-backend-go/pkg/response"
)

// SessionHandler handles HTTP requests for session lifecycle and
// configuration.
type SessionHandler struct {
	dashboard *service.DashboardService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(dashboard *service.DashboardService) *SessionHandler {
	return &SessionHandler{dashboard: dashboard}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.dashboard.Manager().Create()
	info, err := h.dashboard.Describe(sess.ID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, info)
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(c *gin.Context) {
	response.Success(c, gin.H{"sessions": h.dashboard.Manager().IDs()})
}

// Describe handles GET /api/v1/sessions/:id
func (h *SessionHandler) Describe(c *gin.Context) {
	info, err := h.dashboard.Describe(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, info)
}

type toleranceRequest struct {
	// Raw is in slider units; the service scales it to the fraction the
	// classifier compares against.
	Raw float64 `json:"raw" binding:"min=0"`
}

// SetTolerance handles PUT /api/v1/sessions/:id/tolerance
func (h *SessionHandler) SetTolerance(c *gin.Context) {
	var req toleranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid tolerance body: "+err.Error())
		return
	}
	fraction, err := h.dashboard.SetToleranceRaw(c.Param("id"), req.Raw)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"tolerance": fraction})
}

type datesRequest struct {
	Dates  []string `json:"dates"`
	Invert bool     `json:"invert"`
}

// SetDates handles PUT /api/v1/sessions/:id/dates
func (h *SessionHandler) SetDates(c *gin.Context) {
	var req datesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid dates body: "+err.Error())
		return
	}

	sess, err := h.dashboard.Manager().Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	if req.Invert {
		sess.InvertActiveDates()
	} else if err := sess.SetActiveDates(req.Dates); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"active_dates": sess.ActiveDates()})
}

type pivotRequest struct {
	Dimensions []string `json:"dimensions"`
}

// SetPivot handles PUT /api/v1/sessions/:id/pivot
func (h *SessionHandler) SetPivot(c *gin.Context) {
	var req pivotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid pivot body: "+err.Error())
		return
	}
	sess, err := h.dashboard.Manager().Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	sess.SetPivotDimensions(req.Dimensions)
	response.Success(c, gin.H{"pivot_dimensions": sess.PivotDimensions()})
}

type splitRequest struct {
	Field string `json:"field"`
}

// SetSplit handles PUT /api/v1/sessions/:id/split
func (h *SessionHandler) SetSplit(c *gin.Context) {
	var req splitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid split body: "+err.Error())
		return
	}
	sess, err := h.dashboard.Manager().Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	sess.SetSplitField(req.Field)
	response.Success(c, gin.H{"split_field": sess.SplitField()})
}
