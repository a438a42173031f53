package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/repository"
)

// Schedule compares elapsed calendar time with reported progress.
type Schedule struct {
	DaysTotal    int `json:"days_total"`
	DaysElapsed  int `json:"days_elapsed"`
	TimeProgress int `json:"time_progress"`
	Progress     int `json:"progress"`
	AheadBy      int `json:"ahead_by"`
}

// MilestoneSchedule places a milestone on the project timeline. Offset and
// width are percentages of the project span.
type MilestoneSchedule struct {
	models.Milestone
	DurationDays  int     `json:"duration_days"`
	OffsetPercent float64 `json:"offset_percent"`
	WidthPercent  float64 `json:"width_percent"`
}

// MemberSummary aggregates one user's tasks within a project.
type MemberSummary struct {
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	TaskCount       int    `json:"task_count"`
	CompletedCount  int    `json:"completed_count"`
	AverageProgress int    `json:"average_progress"`
}

// Overview is the read-only progress report shown on the public site.
type Overview struct {
	Project    *models.Project     `json:"project"`
	Schedule   Schedule            `json:"schedule"`
	Milestones []MilestoneSchedule `json:"milestones"`
	Members    []MemberSummary     `json:"members"`
}

// ProgressService builds progress overviews
type ProgressService struct {
	projectRepo   repository.ProjectRepository
	milestoneRepo repository.MilestoneRepository
	taskRepo      repository.TaskRepository
	now           func() time.Time
}

// NewProgressService creates a new ProgressService
func NewProgressService(projectRepo repository.ProjectRepository, milestoneRepo repository.MilestoneRepository, taskRepo repository.TaskRepository) *ProgressService {
	return &ProgressService{
		projectRepo:   projectRepo,
		milestoneRepo: milestoneRepo,
		taskRepo:      taskRepo,
		now:           time.Now,
	}
}

// Overview reports on projectID, or on the earliest-starting project when projectID is empty.
func (s *ProgressService) Overview(ctx context.Context, projectID string) (*Overview, error) {
	project, err := s.resolveProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	milestones, err := s.milestoneRepo.List(ctx, repository.MilestoneFilter{ProjectID: project.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{ProjectID: project.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	today := models.NewDate(s.now())
	overview := &Overview{
		Project:    project,
		Schedule:   ComputeSchedule(project.StartDate, project.EndDate, today, project.Progress),
		Milestones: make([]MilestoneSchedule, 0, len(milestones)),
		Members:    SummarizeMembers(tasks),
	}
	for _, m := range milestones {
		overview.Milestones = append(overview.Milestones, placeMilestone(project, m))
	}
	return overview, nil
}

func (s *ProgressService) resolveProject(ctx context.Context, projectID string) (*models.Project, error) {
	if projectID != "" {
		project, err := s.projectRepo.FindByID(ctx, projectID)
		if err != nil {
			return nil, lookupError("project", projectID, err)
		}
		return project, nil
	}

	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, &NotFoundError{Entity: "project", ID: "(any)"}
	}
	return &projects[0], nil
}

// ComputeSchedule derives time progress as round(elapsed/total*100), kept within [0,100].
func ComputeSchedule(start, end, today models.Date, progress int) Schedule {
	total := start.DaysUntil(end)
	elapsed := start.DaysUntil(today)
	elapsed = max(0, min(elapsed, total))

	timeProgress := 0
	if total > 0 {
		timeProgress = int(math.Round(float64(elapsed) / float64(total) * 100))
	} else if !today.Before(start.Time) {
		timeProgress = 100
	}

	return Schedule{
		DaysTotal:    total,
		DaysElapsed:  elapsed,
		TimeProgress: timeProgress,
		Progress:     progress,
		AheadBy:      progress - timeProgress,
	}
}

func placeMilestone(project *models.Project, m models.Milestone) MilestoneSchedule {
	start := project.StartDate
	if m.StartDate != nil {
		start = *m.StartDate
	}
	placed := MilestoneSchedule{
		Milestone:    m,
		DurationDays: start.DaysUntil(m.DueDate),
	}

	span := project.StartDate.DaysUntil(project.EndDate)
	if span > 0 {
		left := float64(project.StartDate.DaysUntil(start)) / float64(span) * 100
		right := float64(project.StartDate.DaysUntil(m.DueDate)) / float64(span) * 100
		placed.OffsetPercent = math.Round(left*10) / 10
		placed.WidthPercent = math.Round((right-left)*10) / 10
	}
	return placed
}

// SummarizeMembers groups tasks by owner, keeping first-seen order.
func SummarizeMembers(tasks []models.TaskView) []MemberSummary {
	index := map[string]int{}
	totals := map[string]int{}
	summaries := []MemberSummary{}

	for _, t := range tasks {
		i, ok := index[t.UserID]
		if !ok {
			name := ""
			if t.UserName != nil {
				name = *t.UserName
			}
			i = len(summaries)
			index[t.UserID] = i
			summaries = append(summaries, MemberSummary{UserID: t.UserID, Name: name})
		}
		summaries[i].TaskCount++
		if t.Status == models.StatusCompleted {
			summaries[i].CompletedCount++
		}
		totals[t.UserID] += t.Progress
	}

	for i := range summaries {
		s := &summaries[i]
		s.AverageProgress = int(math.Round(float64(totals[s.UserID]) / float64(s.TaskCount)))
	}
	return summaries
}
