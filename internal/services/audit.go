package services

import (
	"encoding/json"

	"github.com/NRodriguezT98/ryr-documentos/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// recordAudit appends one audit entry inside the transaction of the mutation
// it records, so the trail and the mutation commit or roll back together.
func recordAudit(tx *gorm.DB, action string, v *models.DocumentVersion, actor Actor, reason string, meta map[string]interface{}) error {
	entry := models.AuditEntry{
		Action:     action,
		Reason:     reason,
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
	}
	if v != nil {
		entry.VersionID = v.ID
		entry.ChainRootID = v.ChainRootID
	}
	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		entry.Metadata = models.JSON{JSON: datatypes.JSON(raw)}
	}
	return tx.Create(&entry).Error
}

// ListAudit returns the audit trail of one chain, oldest first.
func ListAudit(db *gorm.DB, chainRootID string) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	err := db.Where("chain_root_id = ?", chainRootID).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

// CountAudit returns the number of audit entries recorded for one chain.
func CountAudit(db *gorm.DB, chainRootID string) (int64, error) {
	var n int64
	err := db.Model(&models.AuditEntry{}).Where("chain_root_id = ?", chainRootID).Count(&n).Error
	return n, err
}
