package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/progress-tracker-api/internal/services"
)

// ProjectHandler serves /api/projects
type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects returns every project ordered by start date
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, "projects", projects)
}

// GetProject returns the project with its milestones and their tasks
func (h *ProjectHandler) GetProject(c *gin.Context) {
	detail, err := h.projectService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"project":    detail.Project,
		"milestones": detail.Milestones,
		"tasks":      detail.Tasks,
	})
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var input services.ProjectInput
	if !bindInput(c, &input) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "project", project.ID, project)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var input services.ProjectInput
	if !bindInput(c, &input) {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondUpdated(c, "project", project)
}

// DeleteProject removes the project together with everything it owns
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondDeleted(c, "project")
}
