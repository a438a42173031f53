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

// DocumentService handles document business logic
type DocumentService struct {
	documentRepo repository.DocumentRepository
	proposalRepo repository.ProposalRepository
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documentRepo repository.DocumentRepository, proposalRepo repository.ProposalRepository) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		proposalRepo: proposalRepo,
	}
}

// DocumentInput is the request shape for creating and updating a document
type DocumentInput struct {
	Title       patch.Field[string]      `json:"title"`
	Description patch.Field[string]      `json:"description"`
	FileURL     patch.Field[string]      `json:"file_url"`
	FileType    patch.Field[string]      `json:"file_type"`
	UploadDate  patch.Field[models.Date] `json:"upload_date"`
	ProposalID  patch.Field[string]      `json:"proposal_id"`
}

func (s *DocumentService) List(ctx context.Context, filter repository.DocumentFilter) ([]models.DocumentView, error) {
	documents, err := s.documentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, nil
}

func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	document, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("document", id, err)
	}
	return document, nil
}

func (s *DocumentService) Create(ctx context.Context, input DocumentInput) (*models.Document, error) {
	input.ProposalID = nullIfEmpty(input.ProposalID)

	if err := validation.Merge(
		requiredString("title", input.Title),
		requiredString("file_url", input.FileURL),
		requiredString("file_type", input.FileType),
		requiredValue("upload_date", input.UploadDate),
	); err != nil {
		return nil, err
	}
	if err := checkReference(ctx, "proposal_id", "proposal", input.ProposalID, s.proposalRepo.Exists); err != nil {
		return nil, err
	}

	document := &models.Document{
		ID:          uuid.NewString(),
		Title:       input.Title.Value,
		Description: input.Description.Ptr(),
		FileURL:     input.FileURL.Value,
		FileType:    input.FileType.Value,
		UploadDate:  input.UploadDate.Value,
		ProposalID:  input.ProposalID.Ptr(),
	}
	if err := s.documentRepo.Create(ctx, document); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return document, nil
}

func (s *DocumentService) Update(ctx context.Context, id string, input DocumentInput) (*models.Document, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	input.ProposalID = nullIfEmpty(input.ProposalID)

	if err := validation.Merge(
		notClearedString("title", input.Title),
		notClearedString("file_url", input.FileURL),
		notClearedString("file_type", input.FileType),
		notCleared("upload_date", input.UploadDate),
	); err != nil {
		return nil, err
	}
	if err := checkReference(ctx, "proposal_id", "proposal", input.ProposalID, s.proposalRepo.Exists); err != nil {
		return nil, err
	}

	p := patch.Patch{}
	patch.Set(p, "title", input.Title)
	patch.Set(p, "description", input.Description)
	patch.Set(p, "file_url", input.FileURL)
	patch.Set(p, "file_type", input.FileType)
	patch.Set(p, "upload_date", input.UploadDate)
	patch.Set(p, "proposal_id", input.ProposalID)

	if err := s.documentRepo.Update(ctx, id, p); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a single document. Documents own nothing.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return lookupError("document", id, err)
	}
	return nil
}
