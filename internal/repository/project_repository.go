package repository

import (
	"context"

	"github.com/yukikurage/progress-tracker-api/internal/database"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db    *gorm.DB
	store store[models.Project]
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db, store: store[models.Project]{db: db}}
}

func (r *GormProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Scopes(database.OrderBy("start_date", "created_at", "id")).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *GormProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	return r.store.findByID(ctx, id)
}

func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.store.create(ctx, project)
}

func (r *GormProjectRepository) Update(ctx context.Context, id string, p patch.Patch) error {
	return r.store.update(ctx, id, p)
}

func (r *GormProjectRepository) Delete(ctx context.Context, id string) error {
	return runCascade(ctx, r.db, "project", projectCascade(id))
}

func (r *GormProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	return r.store.exists(ctx, id)
}
