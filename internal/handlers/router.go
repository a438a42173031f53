package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/progress-tracker-api/internal/auth"
	"github.com/yukikurage/progress-tracker-api/internal/constants"
	"github.com/yukikurage/progress-tracker-api/internal/middleware"
	"github.com/yukikurage/progress-tracker-api/internal/repository"
	"github.com/yukikurage/progress-tracker-api/internal/services"
	"gorm.io/gorm"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Public     *PublicHandler
	Users      *UserHandler
	Projects   *ProjectHandler
	Milestones *MilestoneHandler
	Tasks      *TaskHandler
	Proposals  *ProposalHandler
	Sections   *ProposalSectionHandler
	Documents  *DocumentHandler
}

// Build wires repositories, services and handlers over db.
func Build(db *gorm.DB, tokens *auth.TokenManager, adminUsername, adminPassword string) Handlers {
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	sectionRepo := repository.NewProposalSectionRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	return Handlers{
		Auth:       NewAuthHandler(services.NewAuthService(userRepo, tokens), adminUsername, adminPassword),
		Public:     NewPublicHandler(services.NewProgressService(projectRepo, milestoneRepo, taskRepo), db),
		Users:      NewUserHandler(services.NewUserService(userRepo)),
		Projects:   NewProjectHandler(services.NewProjectService(projectRepo, milestoneRepo, taskRepo)),
		Milestones: NewMilestoneHandler(services.NewMilestoneService(milestoneRepo, projectRepo, taskRepo)),
		Tasks:      NewTaskHandler(services.NewTaskService(taskRepo, userRepo, milestoneRepo)),
		Proposals:  NewProposalHandler(services.NewProposalService(proposalRepo, projectRepo, sectionRepo, documentRepo)),
		Sections:   NewProposalSectionHandler(services.NewProposalSectionService(sectionRepo, proposalRepo)),
		Documents:  NewDocumentHandler(services.NewDocumentService(documentRepo, proposalRepo)),
	}
}

// crudRoutes mounts the read routes for any authenticated user and the
// mutations for admins only.
type crudRoutes struct {
	list, get, create, update, remove gin.HandlerFunc
}

func (r crudRoutes) mount(group *gin.RouterGroup, admin gin.HandlerFunc) {
	group.GET("", r.list)
	group.GET("/:id", r.get)
	group.POST("", admin, r.create)
	group.PUT("/:id", admin, r.update)
	group.DELETE("/:id", admin, r.remove)
}

// RegisterRoutes mounts the API on r. Session middleware must already be installed.
func RegisterRoutes(r *gin.Engine, h Handlers, tokens *auth.TokenManager) {
	requireAuth := middleware.RequireAuth(tokens)
	requireAdmin := middleware.RequireRole(constants.RoleAdmin)

	r.GET("/health", h.Public.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Auth routes (public)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/logout", h.Auth.Logout)
			authGroup.GET("/init", h.Auth.Init)
			authGroup.GET("/me", requireAuth, h.Auth.GetCurrentUser)
		}

		api.GET("/public/overview", h.Public.Overview)

		// User administration (admin only, reads included)
		users := api.Group("/users", requireAuth, requireAdmin)
		{
			users.GET("", h.Users.ListUsers)
			users.GET("/:id", h.Users.GetUser)
			users.POST("", h.Users.CreateUser)
			users.PUT("/:id", h.Users.UpdateUser)
			users.DELETE("/:id", h.Users.DeleteUser)
		}

		crudRoutes{h.Projects.ListProjects, h.Projects.GetProject, h.Projects.CreateProject, h.Projects.UpdateProject, h.Projects.DeleteProject}.
			mount(api.Group("/projects", requireAuth), requireAdmin)
		crudRoutes{h.Milestones.ListMilestones, h.Milestones.GetMilestone, h.Milestones.CreateMilestone, h.Milestones.UpdateMilestone, h.Milestones.DeleteMilestone}.
			mount(api.Group("/milestones", requireAuth), requireAdmin)
		crudRoutes{h.Tasks.ListTasks, h.Tasks.GetTask, h.Tasks.CreateTask, h.Tasks.UpdateTask, h.Tasks.DeleteTask}.
			mount(api.Group("/tasks", requireAuth), requireAdmin)
		crudRoutes{h.Proposals.ListProposals, h.Proposals.GetProposal, h.Proposals.CreateProposal, h.Proposals.UpdateProposal, h.Proposals.DeleteProposal}.
			mount(api.Group("/proposals", requireAuth), requireAdmin)
		crudRoutes{h.Sections.ListSections, h.Sections.GetSection, h.Sections.CreateSection, h.Sections.UpdateSection, h.Sections.DeleteSection}.
			mount(api.Group("/proposal-sections", requireAuth), requireAdmin)
		crudRoutes{h.Documents.ListDocuments, h.Documents.GetDocument, h.Documents.CreateDocument, h.Documents.UpdateDocument, h.Documents.DeleteDocument}.
			mount(api.Group("/documents", requireAuth), requireAdmin)
	}
}
