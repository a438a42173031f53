package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/progress-tracker-api/internal/auth"
	apierrors "github.com/yukikurage/progress-tracker-api/internal/errors"
	"github.com/yukikurage/progress-tracker-api/internal/services"
	"github.com/yukikurage/progress-tracker-api/internal/validation"
	"github.com/yukikurage/progress-tracker-api/pkg/logger"
)

// respondServiceError maps service error classes to status codes. Reference
// errors are checked before not-found because they match both.
func respondServiceError(c *gin.Context, err error) {
	log := logger.Get()
	event := log.Warn()

	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Error(), verr.Fields)
	case errors.Is(err, services.ErrInvalidReference):
		apierrors.InvalidReference(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrHasDependents):
		apierrors.HasDependents(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		apierrors.Unauthorized(c, err.Error())
	default:
		event = log.Error()
		apierrors.InternalError(c, "")
	}

	event.Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", c.Writer.Status()).
		Msg("request failed")
}

// bindInput decodes the JSON body into dst, answering 400 on malformed input.
func bindInput(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func respondList(c *gin.Context, key string, rows any) {
	apierrors.Success(c, http.StatusOK, key, rows)
}

func respondCreated(c *gin.Context, entity, id string, row any) {
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   entity + " created",
		entity + "Id": id,
		entity:      row,
	})
}

func respondUpdated(c *gin.Context, entity string, row any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": entity + " updated",
		entity:    row,
	})
}

func respondDeleted(c *gin.Context, entity string) {
	apierrors.SuccessMessage(c, http.StatusOK, entity+" deleted")
}
