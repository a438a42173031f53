package repository

import (
	"context"

	"github.com/yukikurage/progress-tracker-api/internal/database"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
	"gorm.io/gorm"
)

// GormDocumentRepository is a GORM implementation of DocumentRepository
type GormDocumentRepository struct {
	db    *gorm.DB
	store store[models.Document]
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &GormDocumentRepository{db: db, store: store[models.Document]{db: db}}
}

func (r *GormDocumentRepository) List(ctx context.Context, filter DocumentFilter) ([]models.DocumentView, error) {
	var documents []models.Document
	err := r.db.WithContext(ctx).
		Scopes(
			database.WhereEq("proposal_id", filter.ProposalID),
			database.OrderBy("created_at", "id"),
		).
		Preload("Proposal").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}

	views := make([]models.DocumentView, 0, len(documents))
	for _, d := range documents {
		view := models.DocumentView{Document: d}
		if d.Proposal != nil {
			title := d.Proposal.Title
			view.ProposalTitle = &title
		}
		views = append(views, view)
	}
	return views, nil
}

func (r *GormDocumentRepository) FindByID(ctx context.Context, id string) (*models.Document, error) {
	return r.store.findByID(ctx, id)
}

func (r *GormDocumentRepository) Create(ctx context.Context, document *models.Document) error {
	return r.store.create(ctx, document)
}

func (r *GormDocumentRepository) Update(ctx context.Context, id string, p patch.Patch) error {
	return r.store.update(ctx, id, p)
}

func (r *GormDocumentRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}
