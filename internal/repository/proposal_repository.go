package repository

import (
	"context"

	"github.com/yukikurage/progress-tracker-api/internal/database"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"gorm.io/gorm"
)

// GormProposalRepository is a GORM implementation of ProposalRepository
type GormProposalRepository struct {
	db    *gorm.DB
	store store[models.Proposal]
}

// NewProposalRepository creates a new ProposalRepository
func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &GormProposalRepository{db: db, store: store[models.Proposal]{db: db}}
}

func (r *GormProposalRepository) List(ctx context.Context, filter ProposalFilter) ([]models.ProposalView, error) {
	var proposals []models.Proposal
	err := r.db.WithContext(ctx).
		Scopes(
			database.WhereEq("project_id", filter.ProjectID),
			database.OrderBy("created_at", "id"),
		).
		Preload("Project").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}

	views := make([]models.ProposalView, 0, len(proposals))
	for _, p := range proposals {
		view := models.ProposalView{Proposal: p}
		if p.Project.ID != "" {
			name := p.Project.Name
			view.ProjectName = &name
		}
		views = append(views, view)
	}
	return views, nil
}

func (r *GormProposalRepository) FindByID(ctx context.Context, id string) (*models.Proposal, error) {
	return r.store.findByID(ctx, id)
}

func (r *GormProposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	return r.store.create(ctx, proposal)
}

func (r *GormProposalRepository) Update(ctx context.Context, id string, p patch.Patch) error {
	return r.store.update(ctx, id, p)
}

func (r *GormProposalRepository) Delete(ctx context.Context, id string) error {
	return runCascade(ctx, r.db, "proposal", proposalCascade(id))
}

func (r *GormProposalRepository) Exists(ctx context.Context, id string) (bool, error) {
	return r.store.exists(ctx, id)
}
