package handbook

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SectionLevelChapter = 1
	SectionLevelSection = 2
)

// Section is one node of the chapter/section tree, scoped to a single
// DocumentVersion. Chapters are level 1 with a null parent; level-2 rows
// always point at a chapter within the same version.
type Section struct {
	ID                uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DocumentVersionID uuid.UUID        `gorm:"type:uuid;not null;index" json:"document_version_id"`
	DocumentVersion   *DocumentVersion `gorm:"constraint:OnDelete:CASCADE;foreignKey:DocumentVersionID;references:ID" json:"document_version,omitempty"`
	ParentID          *uuid.UUID       `gorm:"type:uuid;column:parent_id;index" json:"parent_id,omitempty"`
	Parent            *Section         `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParentID;references:ID" json:"parent,omitempty"`
	Level             int              `gorm:"column:level;not null;index" json:"level"`
	Number            string           `gorm:"column:number" json:"number,omitempty"`
	Title             string           `gorm:"column:title" json:"title,omitempty"`
	Reference         string           `gorm:"column:reference;not null" json:"reference"`
	Path              string           `gorm:"column:path" json:"path,omitempty"`
	Anchor            string           `gorm:"column:anchor" json:"anchor,omitempty"`
	DisplayText       string           `gorm:"column:display_text" json:"display_text,omitempty"`
	OrderIndex        int              `gorm:"column:order_index;not null;default:0" json:"order_index"`
	Fingerprint       string           `gorm:"column:fingerprint" json:"fingerprint,omitempty"`
	CreatedAt         time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt         gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

func (Section) TableName() string { return "section" }
