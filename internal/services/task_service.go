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

// TaskService handles task business logic
type TaskService struct {
	taskRepo      repository.TaskRepository
	userRepo      repository.UserRepository
	milestoneRepo repository.MilestoneRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, milestoneRepo repository.MilestoneRepository) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		userRepo:      userRepo,
		milestoneRepo: milestoneRepo,
	}
}

// TaskInput is the request shape for creating and updating a task
type TaskInput struct {
	Title         patch.Field[string]          `json:"title"`
	Description   patch.Field[string]          `json:"description"`
	Status        patch.Field[models.Status]   `json:"status"`
	StartDate     patch.Field[models.Date]     `json:"start_date"`
	DueDate       patch.Field[models.Date]     `json:"due_date"`
	CompletedDate patch.Field[models.Date]     `json:"completed_date"`
	Progress      patch.Field[int]             `json:"progress"`
	Priority      patch.Field[models.Priority] `json:"priority"`
	UserID        patch.Field[string]          `json:"user_id"`
	MilestoneID   patch.Field[string]          `json:"milestone_id"`
}

// List returns tasks ordered by due date, optionally filtered by milestone or user
func (s *TaskService) List(ctx context.Context, filter repository.TaskFilter) ([]models.TaskView, error) {
	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("task", id, err)
	}
	return task, nil
}

func (s *TaskService) checkReferences(ctx context.Context, input TaskInput) error {
	if err := checkReference(ctx, "user_id", "user", input.UserID, s.userRepo.Exists); err != nil {
		return err
	}
	return checkReference(ctx, "milestone_id", "milestone", input.MilestoneID, s.milestoneRepo.Exists)
}

// Create validates input, checks the owner and milestone exist and inserts the task
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*models.Task, error) {
	input.MilestoneID = nullIfEmpty(input.MilestoneID)

	if err := validation.Merge(
		requiredString("title", input.Title),
		requiredValue("status", input.Status),
		requiredValue("start_date", input.StartDate),
		requiredValue("due_date", input.DueDate),
		requiredValue("priority", input.Priority),
		requiredString("user_id", input.UserID),
		checkStatus(input.Status),
		checkPriority(input.Priority),
		checkProgress(input.Progress),
	); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input); err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:            uuid.NewString(),
		Title:         input.Title.Value,
		Description:   input.Description.Ptr(),
		Status:        input.Status.Value,
		StartDate:     input.StartDate.Value,
		DueDate:       input.DueDate.Value,
		CompletedDate: input.CompletedDate.Ptr(),
		Progress:      input.Progress.Value,
		Priority:      input.Priority.Value,
		UserID:        input.UserID.Value,
		MilestoneID:   input.MilestoneID.Ptr(),
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Update applies the supplied fields only
func (s *TaskService) Update(ctx context.Context, id string, input TaskInput) (*models.Task, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	input.MilestoneID = nullIfEmpty(input.MilestoneID)

	if err := validation.Merge(
		notClearedString("title", input.Title),
		notCleared("status", input.Status),
		notCleared("start_date", input.StartDate),
		notCleared("due_date", input.DueDate),
		notCleared("priority", input.Priority),
		notCleared("progress", input.Progress),
		notClearedString("user_id", input.UserID),
		checkStatus(input.Status),
		checkPriority(input.Priority),
		checkProgress(input.Progress),
	); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input); err != nil {
		return nil, err
	}

	p := patch.Patch{}
	patch.Set(p, "title", input.Title)
	patch.Set(p, "description", input.Description)
	patch.Set(p, "status", input.Status)
	patch.Set(p, "start_date", input.StartDate)
	patch.Set(p, "due_date", input.DueDate)
	patch.Set(p, "completed_date", input.CompletedDate)
	patch.Set(p, "progress", input.Progress)
	patch.Set(p, "priority", input.Priority)
	patch.Set(p, "user_id", input.UserID)
	patch.Set(p, "milestone_id", input.MilestoneID)

	if err := s.taskRepo.Update(ctx, id, p); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return lookupError("task", id, err)
	}
	return nil
}
