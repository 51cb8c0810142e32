package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/swapdash/telemetry-backend-go/internal/ingest"
	"github.com/swapdash/telemetry-backend-go/internal/service"
	"github.com/swapdash/telemetry-backend-go/internal/session"
	"github.com/swapdash/telemetry-backend-go/pkg/response"
)

// fail maps service-layer error kinds onto the response envelope. No
// error here is fatal to the session; the dashboard stays interactive.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, session.ErrGroupNotFound),
		errors.Is(err, service.ErrCentroidNotFound),
		errors.Is(err, service.ErrNoCentroids):
		response.NotFound(c, err.Error())
	case errors.Is(err, session.ErrUnknownDate),
		errors.Is(err, ingest.ErrMalformedSnapshot):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
