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

// ProposalSectionService handles proposal section business logic
type ProposalSectionService struct {
	sectionRepo  repository.ProposalSectionRepository
	proposalRepo repository.ProposalRepository
}

// NewProposalSectionService creates a new ProposalSectionService
func NewProposalSectionService(sectionRepo repository.ProposalSectionRepository, proposalRepo repository.ProposalRepository) *ProposalSectionService {
	return &ProposalSectionService{
		sectionRepo:  sectionRepo,
		proposalRepo: proposalRepo,
	}
}

// ProposalSectionInput is the request shape for creating and updating a section
type ProposalSectionInput struct {
	ProposalID patch.Field[string] `json:"proposal_id"`
	Title      patch.Field[string] `json:"title"`
	Content    patch.Field[string] `json:"content"`
	OrderNum   patch.Field[int]    `json:"order_num"`
}

// List returns sections in display order. Filtering by a proposal that does
// not exist is a not-found error rather than an empty list.
func (s *ProposalSectionService) List(ctx context.Context, filter repository.SectionFilter) ([]models.ProposalSection, error) {
	if filter.ProposalID != "" {
		ok, err := s.proposalRepo.Exists(ctx, filter.ProposalID)
		if err != nil {
			return nil, fmt.Errorf("failed to check proposal: %w", err)
		}
		if !ok {
			return nil, &NotFoundError{Entity: "proposal", ID: filter.ProposalID}
		}
	}

	sections, err := s.sectionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

func (s *ProposalSectionService) Get(ctx context.Context, id string) (*models.ProposalSection, error) {
	section, err := s.sectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("proposal section", id, err)
	}
	return section, nil
}

func (s *ProposalSectionService) Create(ctx context.Context, input ProposalSectionInput) (*models.ProposalSection, error) {
	if err := validation.Merge(
		requiredString("proposal_id", input.ProposalID),
		requiredString("title", input.Title),
		requiredValue("content", input.Content),
		requiredValue("order_num", input.OrderNum),
	); err != nil {
		return nil, err
	}
	if err := checkReference(ctx, "proposal_id", "proposal", input.ProposalID, s.proposalRepo.Exists); err != nil {
		return nil, err
	}

	section := &models.ProposalSection{
		ID:         uuid.NewString(),
		ProposalID: input.ProposalID.Value,
		Title:      input.Title.Value,
		Content:    input.Content.Value,
		OrderNum:   input.OrderNum.Value,
	}
	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to create proposal section: %w", err)
	}
	return section, nil
}

func (s *ProposalSectionService) Update(ctx context.Context, id string, input ProposalSectionInput) (*models.ProposalSection, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := validation.Merge(
		notClearedString("proposal_id", input.ProposalID),
		notClearedString("title", input.Title),
		notCleared("content", input.Content),
		notCleared("order_num", input.OrderNum),
	); err != nil {
		return nil, err
	}
	if err := checkReference(ctx, "proposal_id", "proposal", input.ProposalID, s.proposalRepo.Exists); err != nil {
		return nil, err
	}

	p := patch.Patch{}
	patch.Set(p, "proposal_id", input.ProposalID)
	patch.Set(p, "title", input.Title)
	patch.Set(p, "content", input.Content)
	patch.Set(p, "order_num", input.OrderNum)

	if err := s.sectionRepo.Update(ctx, id, p); err != nil {
		return nil, fmt.Errorf("failed to update proposal section: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *ProposalSectionService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.sectionRepo.Delete(ctx, id); err != nil {
		return lookupError("proposal section", id, err)
	}
	return nil
}
