package services

import (
	"github.com/NRodriguezT98/ryr-documentos/internal/models"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"gorm.io/gorm"
)

// The lifecycle state machine mutates only the validity state of a version.
// It never touches the current-version pointer or the soft-delete status: an
// erroneous version can still be the current one.

// MarkErroneous flags a version's content as wrong. A non-blank reason is
// mandatory; correctedByID optionally links the version that fixes it.
// Re-marking an already erroneous version succeeds and overwrites the reason.
func MarkErroneous(db *gorm.DB, versionID, reason string, correctedByID *string, actor Actor) error {
	if !actor.CanEdit() {
		return types.Authorizationf("actor %s lacks the edit capability", actor.ID)
	}
	if blankReason(reason) {
		return types.Validationf("a reason is required to mark a version erroneous")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		v, err := GetVersion(tx, versionID)
		if err != nil {
			return err
		}

		if correctedByID != nil {
			if _, err := GetVersion(tx, *correctedByID); err != nil {
				return types.Validationf("the correcting version %s does not exist", *correctedByID)
			}
		}

		previous := v.LifecycleState
		updates := map[string]interface{}{
			"lifecycle_state":         models.StateErroneous,
			"state_reason":            reason,
			"corrected_by_version_id": correctedByID,
		}
		if err := tx.Model(v).Updates(updates).Error; err != nil {
			return err
		}

		return recordAudit(tx, models.AuditMarkedErroneous, v, actor, reason, map[string]interface{}{
			"previous_state": previous,
			"corrected_by":   correctedByID,
		})
	})
}

// MarkObsolete flags a version's content as superseded by outside reality
// (an expired license, a voided contract). Same contract as MarkErroneous.
func MarkObsolete(db *gorm.DB, versionID, reason string, actor Actor) error {
	if !actor.CanEdit() {
		return types.Authorizationf("actor %s lacks the edit capability", actor.ID)
	}
	if blankReason(reason) {
		return types.Validationf("a reason is required to mark a version obsolete")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		v, err := GetVersion(tx, versionID)
		if err != nil {
			return err
		}

		previous := v.LifecycleState
		updates := map[string]interface{}{
			"lifecycle_state":         models.StateObsolete,
			"state_reason":            reason,
			"corrected_by_version_id": nil,
		}
		if err := tx.Model(v).Updates(updates).Error; err != nil {
			return err
		}

		return recordAudit(tx, models.AuditMarkedObsolete, v, actor, reason, map[string]interface{}{
			"previous_state": previous,
		})
	})
}

// RestoreToValid returns a version to the valid state from any other state,
// clearing the recorded reason and correction link. Restoration is
// non-destructive, so no reason is required.
func RestoreToValid(db *gorm.DB, versionID string, actor Actor) error {
	if !actor.CanEdit() {
		return types.Authorizationf("actor %s lacks the edit capability", actor.ID)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		v, err := GetVersion(tx, versionID)
		if err != nil {
			return err
		}

		previous := v.LifecycleState
		updates := map[string]interface{}{
			"lifecycle_state":         models.StateValid,
			"state_reason":            "",
			"corrected_by_version_id": nil,
		}
		if err := tx.Model(v).Updates(updates).Error; err != nil {
			return err
		}

		return recordAudit(tx, models.AuditStateRestored, v, actor, "", map[string]interface{}{
			"previous_state": previous,
		})
	})
}
