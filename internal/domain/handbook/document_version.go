package handbook

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentVersion is one ingestion snapshot of a Sourcebook. Versions are
// append-only: every run creates a new row, even when the fingerprint is
// unchanged.
type DocumentVersion struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SourcebookID uuid.UUID      `gorm:"type:uuid;not null;index" json:"sourcebook_id"`
	Sourcebook   *Sourcebook    `gorm:"constraint:OnDelete:CASCADE;foreignKey:SourcebookID;references:ID" json:"sourcebook,omitempty"`
	VersionLabel string         `gorm:"column:version_label" json:"version_label,omitempty"`
	EffectiveAt  *time.Time     `gorm:"column:effective_at" json:"effective_at,omitempty"`
	PublishedAt  *time.Time     `gorm:"column:published_at" json:"published_at,omitempty"`
	SourceURL    string         `gorm:"column:source_url" json:"source_url,omitempty"`
	Fingerprint  string         `gorm:"column:fingerprint;not null" json:"fingerprint"`
	CreatedAt    time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (DocumentVersion) TableName() string { return "document_version" }
