package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/progress-tracker-api/internal/services"
	"gorm.io/gorm"
)

// PublicHandler serves the unauthenticated read-only endpoints.
type PublicHandler struct {
	progressService *services.ProgressService
	db              *gorm.DB
}

func NewPublicHandler(progressService *services.ProgressService, db *gorm.DB) *PublicHandler {
	return &PublicHandler{progressService: progressService, db: db}
}

// Overview reports schedule and member progress for ?project_id=, or for the
// earliest project when omitted.
func (h *PublicHandler) Overview(c *gin.Context) {
	overview, err := h.progressService.Overview(c.Request.Context(), c.Query("project_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"project":    overview.Project,
		"schedule":   overview.Schedule,
		"milestones": overview.Milestones,
		"members":    overview.Members,
	})
}

// Health reports liveness and whether the database answers a ping.
func (h *PublicHandler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Progress Tracker API is running",
	})
}
