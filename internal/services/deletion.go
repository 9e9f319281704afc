// deletion.go
//
// Document version lifecycle service for the RyR back-office
// Copyright (c) 2026 N. Rodriguez
//
// This file is part of ryr-documentos.
// ryr-documentos is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// ryr-documentos is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with ryr-documentos.
// If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/NRodriguezT98/ryr-documentos/internal/models"
	"github.com/NRodriguezT98/ryr-documentos/internal/storage"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurgeConfirmation is the literal a caller must echo back to confirm a
// permanent purge. A usability safeguard, not a security boundary.
const PurgeConfirmation = "ELIMINAR"

// purgeTicketTTL bounds how long a requested purge stays confirmable.
const purgeTicketTTL = 5 * time.Minute

// purgeNow is the ticket clock, replaceable in tests.
var purgeNow = time.Now

// SoftDelete moves one version to the trash. Admin only; the reason must
// carry at least 20 characters. If the target was the current version the
// chain becomes current-less: recovery is an explicit, separate decision.
func SoftDelete(db *gorm.DB, versionID, reason string, actor Actor) error {
	if !actor.IsAdmin() {
		return types.Authorizationf("only administrators can delete versions")
	}
	if shortReason(reason) {
		return types.Validationf("a detailed reason of at least %d characters is required", minDeleteReasonLen)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var v models.DocumentVersion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", versionID).First(&v).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotFoundf("version %s not found", versionID)
		}
		if err != nil {
			return err
		}
		if !v.Active() {
			return types.Preconditionf("version %s is already deleted", versionID)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"lifecycle_status": models.StatusSoftDeleted,
			"is_current":       false,
			"deleted_at":       now,
			"deleted_by":       actor.ID,
			"delete_reason":    reason,
		}
		if err := tx.Model(&v).Updates(updates).Error; err != nil {
			return err
		}

		return recordAudit(tx, models.AuditSoftDeleted, &v, actor, reason, map[string]interface{}{
			"was_current":    v.IsCurrent,
			"version_number": v.VersionNumber,
		})
	})
}

// SoftDeleteChain moves every active version of a chain to the trash in one
// transaction. The caller asked for the whole document; there is no implicit
// cascade anywhere else.
func SoftDeleteChain(db *gorm.DB, chainRootID, reason string, actor Actor) error {
	if !actor.IsAdmin() {
		return types.Authorizationf("only administrators can delete documents")
	}
	if shortReason(reason) {
		return types.Validationf("a detailed reason of at least %d characters is required", minDeleteReasonLen)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var versions []models.DocumentVersion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("chain_root_id = ? AND lifecycle_status = ?", chainRootID, models.StatusActive).
			Order("version_number ASC").
			Find(&versions).Error
		if err != nil {
			return err
		}
		if len(versions) == 0 {
			return types.NotFoundf("document %s has no active versions", chainRootID)
		}

		ids := make([]string, len(versions))
		for i, v := range versions {
			ids[i] = v.ID
		}

		now := time.Now()
		err = tx.Model(&models.DocumentVersion{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"lifecycle_status": models.StatusSoftDeleted,
				"is_current":       false,
				"deleted_at":       now,
				"deleted_by":       actor.ID,
				"delete_reason":    reason,
			}).Error
		if err != nil {
			return err
		}

		root := versions[0]
		return recordAudit(tx, models.AuditSoftDeleted, &models.DocumentVersion{ID: root.ChainRootID, ChainRootID: root.ChainRootID}, actor, reason, map[string]interface{}{
			"entire_chain": true,
			"version_ids":  ids,
		})
	})
}

// RestoreOutcome is the per-id result of a batch restore.
type RestoreOutcome string

const (
	RestoreRestored      RestoreOutcome = "restored"
	RestoreAlreadyActive RestoreOutcome = "already_active"
	RestoreNotFound      RestoreOutcome = "not_found"
)

// RestoreReport maps each requested version id to its outcome and names the
// version promoted to current per chain, if any.
type RestoreReport struct {
	Results  map[string]RestoreOutcome `json:"results"`
	Promoted map[string]string         `json:"promoted,omitempty"`
}

// Failed reports whether any requested id could not be restored.
func (r RestoreReport) Failed() bool {
	for _, o := range r.Results {
		if o == RestoreNotFound {
			return true
		}
	}
	return false
}

// Restore brings a batch of soft-deleted versions back to active as one
// atomic transaction, reporting the outcome of every id. Ids that no longer
// exist (already purged) are reported, never silently dropped, and do not
// abort the rest. Restoring an already-active version is a harmless no-op.
//
// Current-pointer policy: after the batch, a chain left without a current
// version promotes its highest-numbered active version. A restore can never
// produce two current versions.
func Restore(db *gorm.DB, versionIDs []string, actor Actor) (RestoreReport, error) {
	report := RestoreReport{
		Results:  make(map[string]RestoreOutcome, len(versionIDs)),
		Promoted: make(map[string]string),
	}
	if !actor.CanEdit() {
		return report, types.Authorizationf("actor %s lacks the edit capability", actor.ID)
	}
	if len(versionIDs) == 0 {
		return report, types.Validationf("at least one version id is required")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		chains := make(map[string]bool)

		for _, id := range versionIDs {
			var v models.DocumentVersion
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", id).First(&v).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				report.Results[id] = RestoreNotFound
				continue
			}
			if err != nil {
				return err
			}
			if v.Active() {
				report.Results[id] = RestoreAlreadyActive
				continue
			}

			err = tx.Model(&v).Updates(map[string]interface{}{
				"lifecycle_status": models.StatusActive,
				"deleted_at":       nil,
				"deleted_by":       "",
				"delete_reason":    "",
			}).Error
			if err != nil {
				return err
			}
			report.Results[id] = RestoreRestored
			chains[v.ChainRootID] = true

			if err := recordAudit(tx, models.AuditRestored, &v, actor, "", map[string]interface{}{
				"version_number": v.VersionNumber,
			}); err != nil {
				return err
			}
		}

		// Promote a current version in every touched chain that lost its
		// pointer. Never create a second one.
		for chainRootID := range chains {
			var current int64
			err := tx.Model(&models.DocumentVersion{}).
				Where("chain_root_id = ? AND is_current = ? AND lifecycle_status = ?",
					chainRootID, true, models.StatusActive).
				Count(&current).Error
			if err != nil {
				return err
			}
			if current > 0 {
				continue
			}

			var top models.DocumentVersion
			err = tx.Where("chain_root_id = ? AND lifecycle_status = ?", chainRootID, models.StatusActive).
				Order("version_number DESC").
				First(&top).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&top).Update("is_current", true).Error; err != nil {
				return err
			}
			report.Promoted[chainRootID] = top.ID
		}

		return nil
	})
	if err != nil {
		return RestoreReport{Results: map[string]RestoreOutcome{}, Promoted: map[string]string{}}, err
	}

	return report, nil
}

// DeletedChain is one trash entry: a chain root id with its soft-deleted
// versions, so callers can restore one version or the whole document.
type DeletedChain struct {
	ChainRootID   string                   `json:"chainRootId"`
	HousingUnitID string                   `json:"housingUnitId"`
	Versions      []models.DocumentVersion `json:"versions"`
}

// ListDeleted returns soft-deleted versions grouped by chain root. With a
// chainRootID it narrows to that document's trash.
func ListDeleted(db *gorm.DB, chainRootID string) ([]DeletedChain, error) {
	query := db.Where("lifecycle_status = ?", models.StatusSoftDeleted)
	if chainRootID != "" {
		query = query.Where("chain_root_id = ?", chainRootID)
	}

	var versions []models.DocumentVersion
	if err := query.Order("chain_root_id, version_number DESC").Find(&versions).Error; err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var out []DeletedChain
	for _, v := range versions {
		i, ok := index[v.ChainRootID]
		if !ok {
			i = len(out)
			index[v.ChainRootID] = i
			out = append(out, DeletedChain{ChainRootID: v.ChainRootID, HousingUnitID: v.HousingUnitID})
		}
		out[i].Versions = append(out[i].Versions, v)
	}
	return out, nil
}

// PurgeTicket is a short-lived token authorizing one permanent purge.
type PurgeTicket struct {
	Token     string    `json:"token"`
	VersionID string    `json:"versionId"`
	ExpiresAt time.Time `json:"expiresAt"`

	reason      string
	requestedBy string
}

var (
	purgeTicketsMu sync.Mutex
	purgeTickets   = make(map[string]PurgeTicket)
)

// RequestPurge is step one of the permanent purge. Admin only; the target
// must already be in the trash; the reason carries the same 20-character
// friction as deletion. Returns a ticket valid for five minutes.
func RequestPurge(db *gorm.DB, versionID, reason string, actor Actor) (PurgeTicket, error) {
	if !actor.IsAdmin() {
		return PurgeTicket{}, types.Authorizationf("only administrators can purge versions")
	}
	if shortReason(reason) {
		return PurgeTicket{}, types.Validationf("a detailed reason of at least %d characters is required", minDeleteReasonLen)
	}

	v, err := GetVersion(db, versionID)
	if err != nil {
		return PurgeTicket{}, err
	}
	if v.Active() {
		return PurgeTicket{}, types.Preconditionf("version %s is active; it must be soft-deleted before purging", versionID)
	}

	// The ticket outlives the request; Fiber path params are backed by a
	// reusable buffer, so the id must be copied before it escapes.
	ticket := PurgeTicket{
		Token:       uuid.NewString(),
		VersionID:   strings.Clone(versionID),
		ExpiresAt:   purgeNow().Add(purgeTicketTTL),
		reason:      reason,
		requestedBy: actor.ID,
	}

	purgeTicketsMu.Lock()
	purgeTickets[ticket.Token] = ticket
	purgeTicketsMu.Unlock()

	return ticket, nil
}

// ConfirmPurge is step two: it executes the purge authorized by the ticket.
// The caller must echo the confirmation literal. The record is removed first,
// then the blob, so no record is ever left pointing at a missing object.
// Irreversible.
func ConfirmPurge(ctx context.Context, db *gorm.DB, store storage.BlobStore, token, confirm string, actor Actor) error {
	if !actor.IsAdmin() {
		return types.Authorizationf("only administrators can purge versions")
	}
	if confirm != PurgeConfirmation {
		return types.Validationf("confirmation text must be %q", PurgeConfirmation)
	}

	purgeTicketsMu.Lock()
	ticket, ok := purgeTickets[token]
	if ok {
		delete(purgeTickets, token)
	}
	purgeTicketsMu.Unlock()

	if !ok {
		return types.Preconditionf("unknown purge token; request the purge again")
	}
	if purgeNow().After(ticket.ExpiresAt) {
		return types.Preconditionf("purge token expired; request the purge again")
	}

	var storageKey string
	err := db.Transaction(func(tx *gorm.DB) error {
		var v models.DocumentVersion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", ticket.VersionID).First(&v).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotFoundf("version %s not found", ticket.VersionID)
		}
		if err != nil {
			return err
		}
		if v.Active() {
			return types.Preconditionf("version %s was restored; it must be soft-deleted before purging", v.ID)
		}
		storageKey = v.StorageKey

		if err := tx.Delete(&models.DocumentVersion{}, "id = ?", v.ID).Error; err != nil {
			return err
		}

		return recordAudit(tx, models.AuditPurged, &v, actor, ticket.reason, map[string]interface{}{
			"version_number": v.VersionNumber,
			"storage_key":    v.StorageKey,
			"requested_by":   ticket.requestedBy,
		})
	})
	if err != nil {
		return err
	}

	if err := store.Delete(ctx, storageKey); err != nil {
		// The record is gone; the blob is orphaned but unreferenced.
		log.Printf("Purge of %s left orphaned blob %s: %v", ticket.VersionID, storageKey, err)
		return types.StorageErr("record purged but blob deletion failed; manual cleanup required for "+storageKey, err)
	}

	return nil
}
