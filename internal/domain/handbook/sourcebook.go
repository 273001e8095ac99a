package handbook

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sourcebook is a top-level rulebook unit in the regulator's taxonomy.
// Upserted by (authority, code) on every ingestion; never deleted by the
// pipeline.
type Sourcebook struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Authority    string         `gorm:"column:authority;not null;uniqueIndex:idx_sourcebook_authority_code" json:"authority"`
	Code         string         `gorm:"column:code;not null;uniqueIndex:idx_sourcebook_authority_code" json:"code"`
	Jurisdiction string         `gorm:"column:jurisdiction" json:"jurisdiction,omitempty"`
	Title        string         `gorm:"column:title" json:"title"`
	DocType      string         `gorm:"column:doc_type" json:"doc_type,omitempty"`
	SourceURL    string         `gorm:"column:source_url" json:"source_url,omitempty"`
	Status       string         `gorm:"column:status;not null;default:'active'" json:"status"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Sourcebook) TableName() string { return "sourcebook" }
