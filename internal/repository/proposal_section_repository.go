package repository

import (
	"context"

	"github.com/yukikurage/progress-tracker-api/internal/database"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"gorm.io/gorm"
)

// GormProposalSectionRepository is a GORM implementation of ProposalSectionRepository
type GormProposalSectionRepository struct {
	db    *gorm.DB
	store store[models.ProposalSection]
}

// NewProposalSectionRepository creates a new ProposalSectionRepository
func NewProposalSectionRepository(db *gorm.DB) ProposalSectionRepository {
	return &GormProposalSectionRepository{db: db, store: store[models.ProposalSection]{db: db}}
}

func (r *GormProposalSectionRepository) List(ctx context.Context, filter SectionFilter) ([]models.ProposalSection, error) {
	var sections []models.ProposalSection
	err := r.db.WithContext(ctx).
		Scopes(
			database.WhereEq("proposal_id", filter.ProposalID),
			database.OrderBy("order_num", "created_at", "id"),
		).
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *GormProposalSectionRepository) FindByID(ctx context.Context, id string) (*models.ProposalSection, error) {
	return r.store.findByID(ctx, id)
}

// Create stamps created_at from sectionClock unless the caller already set it.
func (r *GormProposalSectionRepository) Create(ctx context.Context, section *models.ProposalSection) error {
	if section.CreatedAt.IsZero() {
		section.CreatedAt = sectionClock.next()
	}
	return r.store.create(ctx, section)
}

func (r *GormProposalSectionRepository) Update(ctx context.Context, id string, p patch.Patch) error {
	return r.store.update(ctx, id, p)
}

func (r *GormProposalSectionRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}
