package models

import (
	"time"
)

// Folder is an organizational node for document chains within one housing
// unit. Folders form a tree through ParentID; cycle-freedom is enforced by
// the folder service at write time, not assumed.
type Folder struct {
	ID            string  `gorm:"primaryKey;size:36"`
	HousingUnitID string  `gorm:"size:36;not null;index"`
	Name          string  `gorm:"size:255;not null"`
	Color         string  `gorm:"size:32"`
	ParentID      *string `gorm:"size:36;index"`
	CreatedAt     time.Time
	CreatedBy     string `gorm:"size:36"`
	UpdatedAt     time.Time
}

// TableName overrides the table name for Folder
func (Folder) TableName() string {
	return "document_folders"
}
