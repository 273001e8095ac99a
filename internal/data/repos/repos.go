package repos

import (
	"gorm.io/gorm"

	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/data/repos/handbook"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/data/repos/runs"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/logger"
)

type SourcebookRepo = handbook.SourcebookRepo
type DocumentVersionRepo = handbook.DocumentVersionRepo
type SectionRepo = handbook.SectionRepo
type ParagraphRepo = handbook.ParagraphRepo

type IngestRunRepo = runs.IngestRunRepo

func NewSourcebookRepo(db *gorm.DB, baseLog *logger.Logger) SourcebookRepo {
	return handbook.NewSourcebookRepo(db, baseLog)
}
func NewDocumentVersionRepo(db *gorm.DB, baseLog *logger.Logger) DocumentVersionRepo {
	return handbook.NewDocumentVersionRepo(db, baseLog)
}
func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	return handbook.NewSectionRepo(db, baseLog)
}
func NewParagraphRepo(db *gorm.DB, baseLog *logger.Logger) ParagraphRepo {
	return handbook.NewParagraphRepo(db, baseLog)
}
func NewIngestRunRepo(db *gorm.DB, baseLog *logger.Logger) IngestRunRepo {
	return runs.NewIngestRunRepo(db, baseLog)
}
