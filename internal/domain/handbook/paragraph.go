package handbook

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Paragraph is a leaf provision (a rule, guidance note, etc.) attached to
// exactly one Section. A paragraph whose owning section cannot be resolved
// is never persisted.
type Paragraph struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SectionID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"section_id"`
	Section     *Section       `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"section,omitempty"`
	Number      string         `gorm:"column:number" json:"number,omitempty"`
	Reference   string         `gorm:"column:reference;not null" json:"reference"`
	Anchor      string         `gorm:"column:anchor" json:"anchor,omitempty"`
	Text        string         `gorm:"column:text;type:text" json:"text,omitempty"`
	Markup      string         `gorm:"column:markup" json:"markup,omitempty"`
	Fingerprint string         `gorm:"column:fingerprint" json:"fingerprint,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Paragraph) TableName() string { return "paragraph" }
