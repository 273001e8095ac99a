package runs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/logger"
)

type IngestRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, run *types.IngestRun) (*types.IngestRun, error)
	// Finish performs the single terminal transition of a run. It only
	// touches rows still in running state, so calling it twice is a no-op.
	Finish(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, stats types.RunStats, runErr *types.RunError) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.IngestRun, error)
}

type ingestRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngestRunRepo(db *gorm.DB, baseLog *logger.Logger) IngestRunRepo {
	return &ingestRunRepo{
		db:  db,
		log: baseLog.With("repo", "IngestRunRepo"),
	}
}

func (r *ingestRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.IngestRun) (*types.IngestRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if run == nil {
		return nil, errors.New("nil ingest run")
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	now := time.Now().UTC()
	if run.Status == "" {
		run.Status = types.RunStatusRunning
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = now
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	run.UpdatedAt = now
	if len(run.Stats) == 0 {
		run.Stats = datatypes.JSON([]byte("{}"))
	}
	if err := transaction.WithContext(ctx).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

func (r *ingestRunRepo) Finish(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, stats types.RunStats, runErr *types.RunError) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return errors.New("finish run requires an id")
	}
	if status != types.RunStatusCompleted && status != types.RunStatusFailed {
		return errors.New("finish run requires a terminal status")
	}
	now := time.Now().UTC()
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"status":      status,
		"stats":       datatypes.JSON(statsJSON),
		"finished_at": now,
		"updated_at":  now,
	}
	if runErr != nil {
		errJSON, err := json.Marshal(runErr)
		if err != nil {
			return err
		}
		updates["error"] = datatypes.JSON(errJSON)
	}
	res := transaction.WithContext(ctx).
		Model(&types.IngestRun{}).
		Where("id = ? AND status = ?", id, types.RunStatusRunning).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		r.log.Warn("Finish skipped: run not in running state", "run_id", id, "status", status)
	}
	return nil
}

func (r *ingestRunRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.IngestRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var run types.IngestRun
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&run).Error
	if err != nil {
		return nil, err
	}
	if run.ID == uuid.Nil {
		return nil, nil
	}
	return &run, nil
}
