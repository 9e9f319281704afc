package models

import (
	"time"
)

// Audit actions recorded by the engine.
const (
	AuditVersionCreated  = "version_created"
	AuditMarkedErroneous = "marked_erroneous"
	AuditMarkedObsolete  = "marked_obsolete"
	AuditStateRestored   = "state_restored"
	AuditSoftDeleted     = "soft_deleted"
	AuditRestored        = "restored"
	AuditPurged          = "purged"
	AuditFileReplaced    = "file_replaced"
	AuditFolderAssigned  = "folder_assigned"
)

// AuditEntry records one state-changing or destructive operation. Destructive
// actions always carry the human-entered reason and the acting identity.
type AuditEntry struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	VersionID   string `gorm:"size:36;index"`
	ChainRootID string `gorm:"size:36;index"`
	Action      string `gorm:"size:32;not null"`
	Reason      string `gorm:"size:1024"`
	ActorID     string `gorm:"size:36;not null"`
	ActorEmail  string `gorm:"size:255"`
	Metadata    JSON   `gorm:"type:json"`
	CreatedAt   time.Time
}

// TableName overrides the table name for AuditEntry
func (AuditEntry) TableName() string {
	return "document_audit_entries"
}
