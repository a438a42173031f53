package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/progress-tracker-api/internal/repository"
	"github.com/yukikurage/progress-tracker-api/internal/services"
)

// ProposalHandler serves /api/proposals
type ProposalHandler struct {
	proposalService *services.ProposalService
}

func NewProposalHandler(proposalService *services.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService}
}

// ListProposals supports ?project_id=
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	proposals, err := h.proposalService.List(c.Request.Context(), repository.ProposalFilter{
		ProjectID: c.Query("project_id"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, "proposals", proposals)
}

// GetProposal returns the proposal with its sections and documents
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	detail, err := h.proposalService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"proposal":  detail.Proposal,
		"sections":  detail.Sections,
		"documents": detail.Documents,
	})
}

func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	var input services.ProposalInput
	if !bindInput(c, &input) {
		return
	}

	proposal, err := h.proposalService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "proposal", proposal.ID, proposal)
}

func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	var input services.ProposalInput
	if !bindInput(c, &input) {
		return
	}

	proposal, err := h.proposalService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondUpdated(c, "proposal", proposal)
}

func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	if err := h.proposalService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondDeleted(c, "proposal")
}
