package database

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes behind the natural list orderings.
func AddIndexes(db *gorm.DB, log zerolog.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"milestones", "idx_milestones_project_due", "project_id, due_date"},
		{"tasks", "idx_tasks_milestone_due", "milestone_id, due_date"},
		{"tasks", "idx_tasks_user_due", "user_id, due_date"},
		{"proposal_sections", "idx_proposal_sections_order", "proposal_id, order_num"},
		{"documents", "idx_documents_upload_date", "upload_date"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug().Str("index", idx.name).Msg("index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Str("table", idx.table).Str("columns", idx.columns).Msg("created index")
	}

	return nil
}
