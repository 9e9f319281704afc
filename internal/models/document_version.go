package models

import (
	"time"
)

// Lifecycle state of a version's content, independent of chain position and
// soft-delete status.
const (
	StateValid     = "valid"
	StateErroneous = "erroneous"
	StateObsolete  = "obsolete"
)

// Lifecycle status: whether a version is live or sitting in the trash.
const (
	StatusActive      = "active"
	StatusSoftDeleted = "soft_deleted"
)

// DocumentVersion is one version of a logical document attached to a housing
// unit. A logical document is the chain of versions sharing ChainRootID; the
// root version carries its own id there.
type DocumentVersion struct {
	ID            string `gorm:"primaryKey;size:36"`
	ChainRootID   string `gorm:"size:36;not null;index;uniqueIndex:idx_chain_version,priority:1"`
	VersionNumber int    `gorm:"not null;uniqueIndex:idx_chain_version,priority:2"`
	IsCurrent     bool   `gorm:"not null;default:false;index"`

	LifecycleState  string `gorm:"size:16;not null;default:'valid'"`
	LifecycleStatus string `gorm:"size:16;not null;default:'active';index"`

	StateReason          string  `gorm:"size:1024"`
	CorrectedByVersionID *string `gorm:"size:36"`

	StorageKey   string `gorm:"size:512;not null"`
	SizeBytes    int64  `gorm:"not null"`
	MimeType     string `gorm:"size:255;not null"`
	OriginalName string `gorm:"size:255;not null"`

	HousingUnitID string  `gorm:"size:36;not null;index"`
	CategoryID    *string `gorm:"size:36"`
	FolderID      *string `gorm:"size:36;index"`

	ChangeNote string `gorm:"size:1024"`

	DeletedAt    *time.Time
	DeletedBy    string `gorm:"size:36"`
	DeleteReason string `gorm:"size:1024"`

	CreatedAt time.Time
	CreatedBy string `gorm:"size:36;not null"`
	UpdatedAt time.Time
}

// TableName overrides the table name for DocumentVersion
func (DocumentVersion) TableName() string {
	return "document_versions"
}

// Active reports whether the version is live (not soft-deleted).
func (v *DocumentVersion) Active() bool {
	return v.LifecycleStatus == StatusActive
}
