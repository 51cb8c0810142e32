package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/swapdash/telemetry-backend-go/internal/service"
	"github.com/swapdash/telemetry-backend-go/pkg/response"
)

// SnapshotHandler handles snapshot batch loads into a session.
type SnapshotHandler struct {
	dashboard *service.DashboardService
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(dashboard *service.DashboardService) *SnapshotHandler {
	return &SnapshotHandler{dashboard: dashboard}
}

// Upload handles POST /api/v1/sessions/:id/snapshots — a multipart
// upload of one or more daily snapshot files. Batch semantics are
// best-effort: a malformed file is reported in the result, siblings
// still load, and the session's date list updates once at the end.
func (h *SnapshotHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form: "+err.Error())
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		response.BadRequest(c, "No snapshot files in upload")
		return
	}

	docs := make(map[string][]byte, len(files))
	order := make([]string, 0, len(files))
	for _, f := range files {
		src, err := f.Open()
		if err != nil {
			response.InternalError(c, "Failed to open upload: "+err.Error())
			return
		}
		raw, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			response.InternalError(c, "Failed to read upload: "+err.Error())
			return
		}
		docs[f.Filename] = raw
		order = append(order, f.Filename)
	}

	result, err := h.dashboard.LoadDocuments(c.Param("id"), docs, order)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

type loadPathsRequest struct {
	Paths []string `json:"paths" binding:"required,min=1"`
}

// LoadPaths handles POST /api/v1/sessions/:id/snapshots/load — loads
// snapshot files already on the server's disk, same batch semantics as
// Upload.
func (h *SnapshotHandler) LoadPaths(c *gin.Context) {
	var req loadPathsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid load body: "+err.Error())
		return
	}
	result, err := h.dashboard.LoadPaths(c.Param("id"), req.Paths)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}
