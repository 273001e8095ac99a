package handbook

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/logger"
)

type SectionRepo interface {
	// BulkInsert persists the rows and returns a canonical-reference →
	// assigned-identifier map for resolving child foreign keys.
	BulkInsert(ctx context.Context, tx *gorm.DB, sections []*types.Section) (map[string]uuid.UUID, error)
	ListByVersion(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) ([]*types.Section, error)
	CountByVersionAndLevel(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, level int) (int64, error)
}

type sectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	return &sectionRepo{
		db:  db,
		log: baseLog.With("repo", "SectionRepo"),
	}
}

func (r *sectionRepo) BulkInsert(ctx context.Context, tx *gorm.DB, sections []*types.Section) (map[string]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	refToID := make(map[string]uuid.UUID, len(sections))
	if len(sections) == 0 {
		return refToID, nil
	}
	for _, sec := range sections {
		if sec.ID == uuid.Nil {
			sec.ID = uuid.New()
		}
	}
	if err := transaction.WithContext(ctx).CreateInBatches(&sections, 200).Error; err != nil {
		return nil, err
	}
	for _, sec := range sections {
		refToID[sec.Reference] = sec.ID
	}
	return refToID, nil
}

func (r *sectionRepo) ListByVersion(ctx context.Context, tx *gorm.DB, versionID uuid.UUID) ([]*types.Section, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Section
	if versionID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(ctx).
		Where("document_version_id = ?", versionID).
		Order("level ASC, order_index ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sectionRepo) CountByVersionAndLevel(ctx context.Context, tx *gorm.DB, versionID uuid.UUID, level int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if versionID == uuid.Nil {
		return 0, nil
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.Section{}).
		Where("document_version_id = ? AND level = ?", versionID, level).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
