package repository

import (
	"context"

	"github.com/yukikurage/progress-tracker-api/internal/database"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"gorm.io/gorm"
)

// GormMilestoneRepository is a GORM implementation of MilestoneRepository
type GormMilestoneRepository struct {
	db    *gorm.DB
	store store[models.Milestone]
}

// NewMilestoneRepository creates a new MilestoneRepository
func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &GormMilestoneRepository{db: db, store: store[models.Milestone]{db: db}}
}

func (r *GormMilestoneRepository) List(ctx context.Context, filter MilestoneFilter) ([]models.Milestone, error) {
	var milestones []models.Milestone
	err := r.db.WithContext(ctx).
		Scopes(
			database.WhereEq("project_id", filter.ProjectID),
			database.OrderBy("due_date", "created_at", "id"),
		).
		Find(&milestones).Error
	if err != nil {
		return nil, err
	}
	return milestones, nil
}

func (r *GormMilestoneRepository) FindByID(ctx context.Context, id string) (*models.Milestone, error) {
	return r.store.findByID(ctx, id)
}

func (r *GormMilestoneRepository) Create(ctx context.Context, milestone *models.Milestone) error {
	return r.store.create(ctx, milestone)
}

func (r *GormMilestoneRepository) Update(ctx context.Context, id string, p patch.Patch) error {
	return r.store.update(ctx, id, p)
}

func (r *GormMilestoneRepository) Delete(ctx context.Context, id string) error {
	return runCascade(ctx, r.db, "milestone", milestoneCascade(id))
}

func (r *GormMilestoneRepository) Exists(ctx context.Context, id string) (bool, error) {
	return r.store.exists(ctx, id)
}
