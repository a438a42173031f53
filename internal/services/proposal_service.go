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

// ProposalService handles proposal business logic
type ProposalService struct {
	proposalRepo repository.ProposalRepository
	projectRepo  repository.ProjectRepository
	sectionRepo  repository.ProposalSectionRepository
	documentRepo repository.DocumentRepository
}

// NewProposalService creates a new ProposalService
func NewProposalService(
	proposalRepo repository.ProposalRepository,
	projectRepo repository.ProjectRepository,
	sectionRepo repository.ProposalSectionRepository,
	documentRepo repository.DocumentRepository,
) *ProposalService {
	return &ProposalService{
		proposalRepo: proposalRepo,
		projectRepo:  projectRepo,
		sectionRepo:  sectionRepo,
		documentRepo: documentRepo,
	}
}

// ProposalInput is the request shape for creating and updating a proposal
type ProposalInput struct {
	ProjectID patch.Field[string] `json:"project_id"`
	Title     patch.Field[string] `json:"title"`
}

// ProposalDetail is a proposal with its ordered sections and its documents
type ProposalDetail struct {
	Proposal  *models.Proposal         `json:"proposal"`
	Sections  []models.ProposalSection `json:"sections"`
	Documents []models.DocumentView    `json:"documents"`
}

func (s *ProposalService) List(ctx context.Context, filter repository.ProposalFilter) ([]models.ProposalView, error) {
	proposals, err := s.proposalRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return proposals, nil
}

func (s *ProposalService) Get(ctx context.Context, id string) (*models.Proposal, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("proposal", id, err)
	}
	return proposal, nil
}

// GetDetail returns the proposal with its sections and documents
func (s *ProposalService) GetDetail(ctx context.Context, id string) (*ProposalDetail, error) {
	proposal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sections, err := s.sectionRepo.List(ctx, repository.SectionFilter{ProposalID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	documents, err := s.documentRepo.List(ctx, repository.DocumentFilter{ProposalID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return &ProposalDetail{Proposal: proposal, Sections: sections, Documents: documents}, nil
}

func (s *ProposalService) Create(ctx context.Context, input ProposalInput) (*models.Proposal, error) {
	if err := validation.Merge(
		requiredString("project_id", input.ProjectID),
		requiredString("title", input.Title),
	); err != nil {
		return nil, err
	}
	if err := checkReference(ctx, "project_id", "project", input.ProjectID, s.projectRepo.Exists); err != nil {
		return nil, err
	}

	proposal := &models.Proposal{
		ID:        uuid.NewString(),
		ProjectID: input.ProjectID.Value,
		Title:     input.Title.Value,
	}
	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}
	return proposal, nil
}

func (s *ProposalService) Update(ctx context.Context, id string, input ProposalInput) (*models.Proposal, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := validation.Merge(
		notClearedString("project_id", input.ProjectID),
		notClearedString("title", input.Title),
	); err != nil {
		return nil, err
	}
	if err := checkReference(ctx, "project_id", "project", input.ProjectID, s.projectRepo.Exists); err != nil {
		return nil, err
	}

	p := patch.Patch{}
	patch.Set(p, "project_id", input.ProjectID)
	patch.Set(p, "title", input.Title)

	if err := s.proposalRepo.Update(ctx, id, p); err != nil {
		return nil, fmt.Errorf("failed to update proposal: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the proposal with its sections and documents
func (s *ProposalService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.proposalRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete proposal: %w", err)
	}
	return nil
}
