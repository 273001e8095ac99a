package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Sourcebook{},
		&types.DocumentVersion{},
		&types.Section{},
		&types.Paragraph{},
		&types.IngestRun{},
	)
}

func EnsureHandbookIndexes(db *gorm.DB) error {
	// Canonical references are unique within one document version.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_section_version_reference
		ON section(document_version_id, reference)
		WHERE deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_section_version_reference: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_section_version_level_order
		ON section(document_version_id, level, order_index);
	`).Error; err != nil {
		return fmt.Errorf("create idx_section_version_level_order: %w", err)
	}
	// Full-text lookup over provision text (consumed by the search layer).
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_paragraph_fts
		ON paragraph
		USING GIN (to_tsvector('english', text))
		WHERE deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_paragraph_fts: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_paragraph_reference
		ON paragraph(reference);
	`).Error; err != nil {
		return fmt.Errorf("create idx_paragraph_reference: %w", err)
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureHandbookIndexes(s.db); err != nil {
		s.log.Error("Handbook index migration failed", "error", err)
		return err
	}
	return nil
}
