package handbook

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/logger"
)

type DocumentVersionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, version *types.DocumentVersion) (*types.DocumentVersion, error)
	LatestBySourcebook(ctx context.Context, tx *gorm.DB, sourcebookID uuid.UUID) (*types.DocumentVersion, error)
	ListBySourcebook(ctx context.Context, tx *gorm.DB, sourcebookID uuid.UUID) ([]*types.DocumentVersion, error)
}

type documentVersionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentVersionRepo(db *gorm.DB, baseLog *logger.Logger) DocumentVersionRepo {
	return &documentVersionRepo{
		db:  db,
		log: baseLog.With("repo", "DocumentVersionRepo"),
	}
}

func (r *documentVersionRepo) Create(ctx context.Context, tx *gorm.DB, version *types.DocumentVersion) (*types.DocumentVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if version == nil || version.SourcebookID == uuid.Nil {
		return nil, errors.New("document version requires a sourcebook id")
	}
	if version.ID == uuid.Nil {
		version.ID = uuid.New()
	}
	now := time.Now().UTC()
	if version.CreatedAt.IsZero() {
		version.CreatedAt = now
	}
	version.UpdatedAt = now
	if err := transaction.WithContext(ctx).Create(version).Error; err != nil {
		return nil, err
	}
	return version, nil
}

func (r *documentVersionRepo) LatestBySourcebook(ctx context.Context, tx *gorm.DB, sourcebookID uuid.UUID) (*types.DocumentVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if sourcebookID == uuid.Nil {
		return nil, nil
	}
	var version types.DocumentVersion
	err := transaction.WithContext(ctx).
		Where("sourcebook_id = ?", sourcebookID).
		Order("created_at DESC").
		Limit(1).
		Find(&version).Error
	if err != nil {
		return nil, err
	}
	if version.ID == uuid.Nil {
		return nil, nil
	}
	return &version, nil
}

func (r *documentVersionRepo) ListBySourcebook(ctx context.Context, tx *gorm.DB, sourcebookID uuid.UUID) ([]*types.DocumentVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.DocumentVersion
	if sourcebookID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(ctx).
		Where("sourcebook_id = ?", sourcebookID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
