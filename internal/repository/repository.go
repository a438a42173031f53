package repository

import (
	"context"

	"github.com/yukikurage/progress-tracker-api/internal/models"
	"github.com/yukikurage/progress-tracker-api/internal/patch"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// List returns every user, oldest first
	List(ctx context.Context) ([]models.User, error)

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id string, p patch.Patch) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)

	// CountByRole counts users holding role
	CountByRole(ctx context.Context, role models.Role) (int64, error)

	// CountTasks counts the tasks assigned to a user
	CountTasks(ctx context.Context, id string) (int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// List returns every project ordered by start date
	List(ctx context.Context) ([]models.Project, error)

	FindByID(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, id string, p patch.Patch) error

	// Delete removes the project with its milestones, tasks, proposals,
	// sections and documents in one transaction
	Delete(ctx context.Context, id string) error

	Exists(ctx context.Context, id string) (bool, error)
}

// MilestoneFilter holds filtering options for listing milestones
type MilestoneFilter struct {
	ProjectID string
}

// MilestoneRepository defines the interface for milestone data access
type MilestoneRepository interface {
	// List returns milestones ordered by due date
	List(ctx context.Context, filter MilestoneFilter) ([]models.Milestone, error)

	FindByID(ctx context.Context, id string) (*models.Milestone, error)
	Create(ctx context.Context, milestone *models.Milestone) error
	Update(ctx context.Context, id string, p patch.Patch) error

	// Delete removes the milestone and its tasks in one transaction
	Delete(ctx context.Context, id string) error

	Exists(ctx context.Context, id string) (bool, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	MilestoneID string
	UserID      string

	// ProjectID selects tasks belonging to any milestone of the project
	ProjectID string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// List returns tasks ordered by due date, with owner name and milestone title
	List(ctx context.Context, filter TaskFilter) ([]models.TaskView, error)

	FindByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, id string, p patch.Patch) error
	Delete(ctx context.Context, id string) error
}

// ProposalFilter holds filtering options for listing proposals
type ProposalFilter struct {
	ProjectID string
}

// ProposalRepository defines the interface for proposal data access
type ProposalRepository interface {
	// List returns proposals with their project name, oldest first
	List(ctx context.Context, filter ProposalFilter) ([]models.ProposalView, error)

	FindByID(ctx context.Context, id string) (*models.Proposal, error)
	Create(ctx context.Context, proposal *models.Proposal) error
	Update(ctx context.Context, id string, p patch.Patch) error

	// Delete removes the proposal with its sections and documents in one transaction
	Delete(ctx context.Context, id string) error

	Exists(ctx context.Context, id string) (bool, error)
}

// SectionFilter holds filtering options for listing proposal sections
type SectionFilter struct {
	ProposalID string
}

// ProposalSectionRepository defines the interface for proposal section data access
type ProposalSectionRepository interface {
	// List returns sections by order_num, ties in insertion order
	List(ctx context.Context, filter SectionFilter) ([]models.ProposalSection, error)

	FindByID(ctx context.Context, id string) (*models.ProposalSection, error)
	Create(ctx context.Context, section *models.ProposalSection) error
	Update(ctx context.Context, id string, p patch.Patch) error
	Delete(ctx context.Context, id string) error
}

// DocumentFilter holds filtering options for listing documents
type DocumentFilter struct {
	ProposalID string
}

// DocumentRepository defines the interface for document data access
type DocumentRepository interface {
	// List returns documents with their proposal title, oldest first
	List(ctx context.Context, filter DocumentFilter) ([]models.DocumentView, error)

	FindByID(ctx context.Context, id string) (*models.Document, error)
	Create(ctx context.Context, document *models.Document) error
	Update(ctx context.Context, id string, p patch.Patch) error
	Delete(ctx context.Context, id string) error
}
