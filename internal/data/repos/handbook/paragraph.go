package handbook

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/logger"
)

type ParagraphRepo interface {
	BulkInsert(ctx context.Context, tx *gorm.DB, paragraphs []*types.Paragraph) (int64, error)
	ListBySection(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) ([]*types.Paragraph, error)
	CountByVersion(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) (int64, error)
}

type paragraphRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParagraphRepo(db *gorm.DB, baseLog *logger.Logger) ParagraphRepo {
	return &paragraphRepo{
		db:  db,
		log: baseLog.With("repo", "ParagraphRepo"),
	}
}

func (r *paragraphRepo) BulkInsert(ctx context.Context, tx *gorm.DB, paragraphs []*types.Paragraph) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(paragraphs) == 0 {
		return 0, nil
	}
	for _, p := range paragraphs {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
	}
	if err := transaction.WithContext(ctx).CreateInBatches(&paragraphs, 500).Error; err != nil {
		return 0, err
	}
	return int64(len(paragraphs)), nil
}

func (r *paragraphRepo) ListBySection(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID) ([]*types.Paragraph, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Paragraph
	if sectionID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *paragraphRepo) CountByVersion(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if versionID == uuid.Nil {
		return 0, nil
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.Paragraph{}).
		Joins("JOIN section ON section.id = paragraph.section_id").
		Where("section.document_version_id = ?", versionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
