package repository

import (
	"context"

	"github.com/yukikurage/progress-tracker-api/internal/database"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db    *gorm.DB
	store store[models.Task]
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db, store: store[models.Task]{db: db}}
}

// List retrieves tasks with filtering, joined with the owner and milestone
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.TaskView, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&models.Task{}).Scopes(
		database.WhereEq("tasks.milestone_id", filter.MilestoneID),
		database.WhereEq("tasks.user_id", filter.UserID),
	)

	if filter.ProjectID != "" {
		milestoneIDs := db.Model(&models.Milestone{}).Select("id").Where("project_id = ?", filter.ProjectID)
		query = query.Where("tasks.milestone_id IN (?)", milestoneIDs)
	}

	var tasks []models.Task
	err := query.
		Preload("User").
		Preload("Milestone").
		Scopes(database.OrderBy("tasks.due_date", "tasks.created_at", "tasks.id")).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	views := make([]models.TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := models.TaskView{Task: t}
		if t.User.ID != "" {
			name := t.User.Name
			view.UserName = &name
		}
		if t.Milestone != nil {
			title := t.Milestone.Title
			view.MilestoneTitle = &title
		}
		views = append(views, view)
	}
	return views, nil
}

func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	return r.store.findByID(ctx, id)
}

func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.store.create(ctx, task)
}

func (r *GormTaskRepository) Update(ctx context.Context, id string, p patch.Patch) error {
	return r.store.update(ctx, id, p)
}

func (r *GormTaskRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}
