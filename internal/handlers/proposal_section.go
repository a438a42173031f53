package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/progress-tracker-api/internal/repository"
	"github.com/yukikurage/progress-tracker-api/internal/services"
)

// ProposalSectionHandler serves /api/proposal-sections
type ProposalSectionHandler struct {
	sectionService *services.ProposalSectionService
}

func NewProposalSectionHandler(sectionService *services.ProposalSectionService) *ProposalSectionHandler {
	return &ProposalSectionHandler{sectionService: sectionService}
}

// ListSections supports ?proposal_id=; an unknown proposal answers 404
func (h *ProposalSectionHandler) ListSections(c *gin.Context) {
	sections, err := h.sectionService.List(c.Request.Context(), repository.SectionFilter{
		ProposalID: c.Query("proposal_id"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, "sections", sections)
}

func (h *ProposalSectionHandler) GetSection(c *gin.Context) {
	section, err := h.sectionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "section": section})
}

func (h *ProposalSectionHandler) CreateSection(c *gin.Context) {
	var input services.ProposalSectionInput
	if !bindInput(c, &input) {
		return
	}

	section, err := h.sectionService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "section", section.ID, section)
}

func (h *ProposalSectionHandler) UpdateSection(c *gin.Context) {
	var input services.ProposalSectionInput
	if !bindInput(c, &input) {
		return
	}

	section, err := h.sectionService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondUpdated(c, "section", section)
}

func (h *ProposalSectionHandler) DeleteSection(c *gin.Context) {
	if err := h.sectionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondDeleted(c, "section")
}
