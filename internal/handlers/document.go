package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/progress-tracker-api/internal/repository"
	"github.com/yukikurage/progress-tracker-api/internal/services"
)

// DocumentHandler serves /api/documents
type DocumentHandler struct {
	documentService *services.DocumentService
}

func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// ListDocuments supports ?proposal_id=
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	documents, err := h.documentService.List(c.Request.Context(), repository.DocumentFilter{
		ProposalID: c.Query("proposal_id"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, "documents", documents)
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	document, err := h.documentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "document": document})
}

func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var input services.DocumentInput
	if !bindInput(c, &input) {
		return
	}

	document, err := h.documentService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "document", document.ID, document)
}

func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	var input services.DocumentInput
	if !bindInput(c, &input) {
		return
	}

	document, err := h.documentService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondUpdated(c, "document", document)
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	if err := h.documentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondDeleted(c, "document")
}
