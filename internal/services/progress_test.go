package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
)

func TestComputeSchedule(t *testing.T) {
	start := models.MustDate("2025-01-01")
	end := models.MustDate("2025-04-11") // 100 days

	tests := []struct {
		name     string
		today    string
		progress int
		want     Schedule
	}{
		{"before start", "2024-12-01", 0, Schedule{DaysTotal: 100, DaysElapsed: 0, TimeProgress: 0, Progress: 0, AheadBy: 0}},
		{"midway ahead", "2025-02-20", 60, Schedule{DaysTotal: 100, DaysElapsed: 50, TimeProgress: 50, Progress: 60, AheadBy: 10}},
		{"midway behind", "2025-01-31", 10, Schedule{DaysTotal: 100, DaysElapsed: 30, TimeProgress: 30, Progress: 10, AheadBy: -20}},
		{"after end", "2025-06-01", 90, Schedule{DaysTotal: 100, DaysElapsed: 100, TimeProgress: 100, Progress: 90, AheadBy: -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSchedule(start, end, models.MustDate(tt.today), tt.progress)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarizeMembers(t *testing.T) {
	alice, bob := "Alice", "Bob"
	tasks := []models.TaskView{
		{Task: models.Task{UserID: "a", Status: models.StatusCompleted, Progress: 100}, UserName: &alice},
		{Task: models.Task{UserID: "b", Status: models.StatusPending, Progress: 0}, UserName: &bob},
		{Task: models.Task{UserID: "a", Status: models.StatusInProgress, Progress: 45}, UserName: &alice},
	}

	got := SummarizeMembers(tasks)
	require.Len(t, got, 2)
	assert.Equal(t, MemberSummary{UserID: "a", Name: "Alice", TaskCount: 2, CompletedCount: 1, AverageProgress: 73}, got[0])
	assert.Equal(t, MemberSummary{UserID: "b", Name: "Bob", TaskCount: 1, CompletedCount: 0, AverageProgress: 0}, got[1])
}

func TestProgressService_OverviewDefaultsToEarliestProject(t *testing.T) {
	env := setupServiceTestEnv(t)
	env.progress.now = func() time.Time { return time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC) }

	env.createProject(t, "Later", "2025-03-01", "2025-12-31")
	thesis := env.createProject(t, "Thesis", "2025-01-01", "2025-04-11")
	user := env.createUser(t, "u1")

	m, err := env.milestones.Create(env.ctx, MilestoneInput{
		ProjectID: patch.Of(thesis.ID),
		Title:     patch.Of("Design"),
		StartDate: patch.Of(models.MustDate("2025-01-11")),
		DueDate:   patch.Of(models.MustDate("2025-02-10")),
		Status:    patch.Of(models.StatusCompleted),
	})
	require.NoError(t, err)
	_, err = env.tasks.Create(env.ctx, TaskInput{
		Title:       patch.Of("Draft"),
		Status:      patch.Of(models.StatusCompleted),
		StartDate:   patch.Of(models.MustDate("2025-01-11")),
		DueDate:     patch.Of(models.MustDate("2025-01-20")),
		Priority:    patch.Of(models.PriorityHigh),
		Progress:    patch.Of(100),
		UserID:      patch.Of(user.ID),
		MilestoneID: patch.Of(m.ID),
	})
	require.NoError(t, err)

	overview, err := env.progress.Overview(env.ctx, "")
	require.NoError(t, err)
	assert.Equal(t, thesis.ID, overview.Project.ID)
	assert.Equal(t, 50, overview.Schedule.TimeProgress)

	require.Len(t, overview.Milestones, 1)
	assert.Equal(t, 30, overview.Milestones[0].DurationDays)
	assert.InDelta(t, 10.0, overview.Milestones[0].OffsetPercent, 0.001)
	assert.InDelta(t, 30.0, overview.Milestones[0].WidthPercent, 0.001)

	require.Len(t, overview.Members, 1)
	assert.Equal(t, user.Name, overview.Members[0].Name)
	assert.Equal(t, 1, overview.Members[0].CompletedCount)

	_, err = env.progress.Overview(env.ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
