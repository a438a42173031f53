package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/progress-tracker-api/internal/metrics"
	"github.com/yukikurage/progress-tracker-api/internal/models"
	"gorm.io/gorm"
)

// cascadeStep is one delete inside a cascade. Steps run in order, children
// before parents, so foreign keys never dangle mid-transaction.
type cascadeStep struct {
	name string
	run  func(tx *gorm.DB) error
}

// CascadeError names the step that failed and caused the rollback.
type CascadeError struct {
	Entity string
	Step   string
	Err    error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("delete %s: step %q failed: %v", e.Entity, e.Step, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

// runCascade executes steps inside one transaction. Any failing step rolls
// back every earlier step.
func runCascade(ctx context.Context, db *gorm.DB, entity string, steps []cascadeStep) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, step := range steps {
			if err := step.run(tx); err != nil {
				return &CascadeError{Entity: entity, Step: step.name, Err: err}
			}
		}
		return nil
	})
	metrics.RecordCascade(entity, err)
	return err
}

func deleteWhere(model any, query string, args ...any) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		return tx.Where(query, args...).Delete(model).Error
	}
}

// deleteRoot removes the cascade's parent row. Zero affected rows means it
// vanished after the existence check, which aborts the whole cascade.
func deleteRoot(model any, id string) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}
}

func projectCascade(id string) []cascadeStep {
	return []cascadeStep{
		{name: "tasks", run: func(tx *gorm.DB) error {
			milestoneIDs := tx.Model(&models.Milestone{}).Select("id").Where("project_id = ?", id)
			return tx.Where("milestone_id IN (?)", milestoneIDs).Delete(&models.Task{}).Error
		}},
		{name: "milestones", run: deleteWhere(&models.Milestone{}, "project_id = ?", id)},
		{name: "proposal_sections", run: func(tx *gorm.DB) error {
			proposalIDs := tx.Model(&models.Proposal{}).Select("id").Where("project_id = ?", id)
			return tx.Where("proposal_id IN (?)", proposalIDs).Delete(&models.ProposalSection{}).Error
		}},
		{name: "documents", run: func(tx *gorm.DB) error {
			proposalIDs := tx.Model(&models.Proposal{}).Select("id").Where("project_id = ?", id)
			return tx.Where("proposal_id IN (?)", proposalIDs).Delete(&models.Document{}).Error
		}},
		{name: "proposals", run: deleteWhere(&models.Proposal{}, "project_id = ?", id)},
		{name: "project", run: deleteRoot(&models.Project{}, id)},
	}
}

func milestoneCascade(id string) []cascadeStep {
	return []cascadeStep{
		{name: "tasks", run: deleteWhere(&models.Task{}, "milestone_id = ?", id)},
		{name: "milestone", run: deleteRoot(&models.Milestone{}, id)},
	}
}

func proposalCascade(id string) []cascadeStep {
	return []cascadeStep{
		{name: "proposal_sections", run: deleteWhere(&models.ProposalSection{}, "proposal_id = ?", id)},
		{name: "documents", run: deleteWhere(&models.Document{}, "proposal_id = ?", id)},
		{name: "proposal", run: deleteRoot(&models.Proposal{}, id)},
	}
}
