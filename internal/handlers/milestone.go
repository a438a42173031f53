package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/progress-tracker-api/internal/repository"
	"github.com/yukikurage/progress-tracker-api/internal/services"
)

// MilestoneHandler serves /api/milestones
type MilestoneHandler struct {
	milestoneService *services.MilestoneService
}

func NewMilestoneHandler(milestoneService *services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestoneService: milestoneService}
}

// ListMilestones supports ?project_id=
func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	milestones, err := h.milestoneService.List(c.Request.Context(), repository.MilestoneFilter{
		ProjectID: c.Query("project_id"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, "milestones", milestones)
}

func (h *MilestoneHandler) GetMilestone(c *gin.Context) {
	detail, err := h.milestoneService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"milestone": detail.Milestone,
		"tasks":     detail.Tasks,
	})
}

func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	var input services.MilestoneInput
	if !bindInput(c, &input) {
		return
	}

	milestone, err := h.milestoneService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "milestone", milestone.ID, milestone)
}

func (h *MilestoneHandler) UpdateMilestone(c *gin.Context) {
	var input services.MilestoneInput
	if !bindInput(c, &input) {
		return
	}

	milestone, err := h.milestoneService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondUpdated(c, "milestone", milestone)
}

func (h *MilestoneHandler) DeleteMilestone(c *gin.Context) {
	if err := h.milestoneService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondDeleted(c, "milestone")
}
