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

// MilestoneService handles milestone business logic
type MilestoneService struct {
	milestoneRepo repository.MilestoneRepository
	projectRepo   repository.ProjectRepository
	taskRepo      repository.TaskRepository
}

// NewMilestoneService creates a new MilestoneService
func NewMilestoneService(milestoneRepo repository.MilestoneRepository, projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *MilestoneService {
	return &MilestoneService{
		milestoneRepo: milestoneRepo,
		projectRepo:   projectRepo,
		taskRepo:      taskRepo,
	}
}

// MilestoneInput is the request shape for creating and updating a milestone
type MilestoneInput struct {
	ProjectID   patch.Field[string]        `json:"project_id"`
	Title       patch.Field[string]        `json:"title"`
	Description patch.Field[string]        `json:"description"`
	StartDate   patch.Field[models.Date]   `json:"start_date"`
	DueDate     patch.Field[models.Date]   `json:"due_date"`
	Status      patch.Field[models.Status] `json:"status"`
	Progress    patch.Field[int]           `json:"progress"`
}

// MilestoneDetail is a milestone with its tasks
type MilestoneDetail struct {
	Milestone *models.Milestone `json:"milestone"`
	Tasks     []models.TaskView `json:"tasks"`
}

func (s *MilestoneService) List(ctx context.Context, filter repository.MilestoneFilter) ([]models.Milestone, error) {
	milestones, err := s.milestoneRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return milestones, nil
}

func (s *MilestoneService) Get(ctx context.Context, id string) (*models.Milestone, error) {
	milestone, err := s.milestoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("milestone", id, err)
	}
	return milestone, nil
}

// GetDetail returns the milestone together with its tasks
func (s *MilestoneService) GetDetail(ctx context.Context, id string) (*MilestoneDetail, error) {
	milestone, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{MilestoneID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return &MilestoneDetail{Milestone: milestone, Tasks: tasks}, nil
}

// Create validates input, checks the project exists and inserts the milestone
func (s *MilestoneService) Create(ctx context.Context, input MilestoneInput) (*models.Milestone, error) {
	if err := validation.Merge(
		requiredString("project_id", input.ProjectID),
		requiredString("title", input.Title),
		requiredValue("due_date", input.DueDate),
		requiredValue("status", input.Status),
		checkStatus(input.Status),
		checkProgress(input.Progress),
	); err != nil {
		return nil, err
	}
	if err := checkReference(ctx, "project_id", "project", input.ProjectID, s.projectRepo.Exists); err != nil {
		return nil, err
	}

	milestone := &models.Milestone{
		ID:          uuid.NewString(),
		ProjectID:   input.ProjectID.Value,
		Title:       input.Title.Value,
		Description: input.Description.Ptr(),
		StartDate:   input.StartDate.Ptr(),
		DueDate:     input.DueDate.Value,
		Status:      input.Status.Value,
		Progress:    input.Progress.Value,
	}
	if err := s.milestoneRepo.Create(ctx, milestone); err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}
	return milestone, nil
}

// Update applies the supplied fields only
func (s *MilestoneService) Update(ctx context.Context, id string, input MilestoneInput) (*models.Milestone, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := validation.Merge(
		notClearedString("project_id", input.ProjectID),
		notClearedString("title", input.Title),
		notCleared("due_date", input.DueDate),
		notCleared("status", input.Status),
		notCleared("progress", input.Progress),
		checkStatus(input.Status),
		checkProgress(input.Progress),
	); err != nil {
		return nil, err
	}
	if err := checkReference(ctx, "project_id", "project", input.ProjectID, s.projectRepo.Exists); err != nil {
		return nil, err
	}

	p := patch.Patch{}
	patch.Set(p, "project_id", input.ProjectID)
	patch.Set(p, "title", input.Title)
	patch.Set(p, "description", input.Description)
	patch.Set(p, "start_date", input.StartDate)
	patch.Set(p, "due_date", input.DueDate)
	patch.Set(p, "status", input.Status)
	patch.Set(p, "progress", input.Progress)

	if err := s.milestoneRepo.Update(ctx, id, p); err != nil {
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the milestone and its tasks
func (s *MilestoneService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.milestoneRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	return nil
}
