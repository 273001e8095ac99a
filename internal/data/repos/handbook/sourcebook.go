package handbook

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/logger"
)

type SourcebookRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, book *types.Sourcebook) (*types.Sourcebook, error)
	GetByCode(ctx context.Context, tx *gorm.DB, authority, code string) (*types.Sourcebook, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Sourcebook, error)
}

type sourcebookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSourcebookRepo(db *gorm.DB, baseLog *logger.Logger) SourcebookRepo {
	return &sourcebookRepo{
		db:  db,
		log: baseLog.With("repo", "SourcebookRepo"),
	}
}

// Upsert inserts or refreshes a sourcebook keyed by (authority, code) and
// returns the persisted row with its assigned identifier.
func (r *sourcebookRepo) Upsert(ctx context.Context, tx *gorm.DB, book *types.Sourcebook) (*types.Sourcebook, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if book == nil || book.Authority == "" || book.Code == "" {
		return nil, errors.New("sourcebook upsert requires authority and code")
	}
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	now := time.Now().UTC()
	book.UpdatedAt = now
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "authority"}, {Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"jurisdiction", "title", "doc_type", "source_url", "status", "updated_at",
			}),
		}).
		Create(book).Error
	if err != nil {
		return nil, err
	}
	// On conflict the insert keeps the existing row's id, so read it back.
	return r.GetByCode(ctx, transaction, book.Authority, book.Code)
}

func (r *sourcebookRepo) GetByCode(ctx context.Context, tx *gorm.DB, authority, code string) (*types.Sourcebook, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var book types.Sourcebook
	err := transaction.WithContext(ctx).
		Where("authority = ? AND code = ?", authority, code).
		Limit(1).
		Find(&book).Error
	if err != nil {
		return nil, err
	}
	if book.ID == uuid.Nil {
		return nil, nil
	}
	return &book, nil
}

func (r *sourcebookRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Sourcebook, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Sourcebook
	if len(ids) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
