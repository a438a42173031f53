package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"github.com/yukikurage/progress-tracker-api/internal/repository"
	"github.com/yukikurage/progress-tracker-api/internal/validation"
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo   repository.ProjectRepository
	milestoneRepo repository.MilestoneRepository
	taskRepo      repository.TaskRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, milestoneRepo repository.MilestoneRepository, taskRepo repository.TaskRepository) *ProjectService {
	return &ProjectService{
		projectRepo:   projectRepo,
		milestoneRepo: milestoneRepo,
		taskRepo:      taskRepo,
	}
}

// ProjectInput is the request shape for creating and updating a project
type ProjectInput struct {
	Name        patch.Field[string]      `json:"name"`
	Description patch.Field[string]      `json:"description"`
	StartDate   patch.Field[models.Date] `json:"start_date"`
	EndDate     patch.Field[models.Date] `json:"end_date"`
	Progress    patch.Field[int]         `json:"progress"`
}

// ProjectDetail is a project with its milestones and their tasks
type ProjectDetail struct {
	Project    *models.Project    `json:"project"`
	Milestones []models.Milestone `json:"milestones"`
	Tasks      []models.TaskView  `json:"tasks"`
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("project", id, err)
	}
	return project, nil
}

// GetDetail returns the project together with its milestones and tasks
func (s *ProjectService) GetDetail(ctx context.Context, id string) (*ProjectDetail, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	milestones, err := s.milestoneRepo.List(ctx, repository.MilestoneFilter{ProjectID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}

	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{ProjectID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &ProjectDetail{Project: project, Milestones: milestones, Tasks: tasks}, nil
}

// Create validates input and inserts a new project
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*models.Project, error) {
	if err := validation.Merge(
		requiredString("name", input.Name),
		requiredValue("start_date", input.StartDate),
		requiredValue("end_date", input.EndDate),
		checkProgress(input.Progress),
	); err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        input.Name.Value,
		Description: input.Description.Ptr(),
		StartDate:   input.StartDate.Value,
		EndDate:     input.EndDate.Value,
		Progress:    input.Progress.Value,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// Update applies the supplied fields only
func (s *ProjectService) Update(ctx context.Context, id string, input ProjectInput) (*models.Project, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := validation.Merge(
		notClearedString("name", input.Name),
		notCleared("start_date", input.StartDate),
		notCleared("end_date", input.EndDate),
		notCleared("progress", input.Progress),
		checkProgress(input.Progress),
	); err != nil {
		return nil, err
	}

	p := patch.Patch{}
	patch.Set(p, "name", input.Name)
	patch.Set(p, "description", input.Description)
	patch.Set(p, "start_date", input.StartDate)
	patch.Set(p, "end_date", input.EndDate)
	patch.Set(p, "progress", input.Progress)

	if err := s.projectRepo.Update(ctx, id, p); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the project and everything it owns
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
