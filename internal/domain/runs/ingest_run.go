package runs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// IngestRun is the audit record of one pipeline execution. Created in
// status running before any fetch, mutated exactly once at run end.
type IngestRun struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Authority  string         `gorm:"column:authority;not null;index" json:"authority"`
	SourceURL  string         `gorm:"column:source_url" json:"source_url,omitempty"`
	Status     string         `gorm:"column:status;not null;index" json:"status"`
	Stats      datatypes.JSON `gorm:"column:stats;type:jsonb" json:"stats,omitempty"`
	Error      datatypes.JSON `gorm:"column:error;type:jsonb" json:"error,omitempty"`
	StartedAt  time.Time      `gorm:"column:started_at;not null" json:"started_at"`
	FinishedAt *time.Time     `gorm:"column:finished_at" json:"finished_at,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (IngestRun) TableName() string { return "ingest_run" }

// RunStats is the accumulated-counter payload stored on IngestRun.Stats.
type RunStats struct {
	Sourcebooks       int64 `json:"sourcebooks"`
	Chapters          int64 `json:"chapters"`
	Sections          int64 `json:"sections"`
	Paragraphs        int64 `json:"paragraphs"`
	ParagraphsDropped int64 `json:"paragraphs_dropped"`
}

// RunError is the structured failure payload stored on IngestRun.Error.
type RunError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Trace   string `json:"trace,omitempty"`
}
