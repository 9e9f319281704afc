// replacement.go
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
	"bytes"
	"context"
	"io"
	"log"
	"time"

	"github.com/NRodriguezT98/ryr-documentos/internal/models"
	"github.com/NRodriguezT98/ryr-documentos/internal/storage"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
)

// ReplaceWindow is how long after creation a version's file may be corrected
// in place. Past it, a mistake means marking the version erroneous and
// uploading a new one.
const ReplaceWindow = 48 * time.Hour

// IsReplaceable reports whether a version created at the given time is still
// inside the replace window at now. Exactly 48 hours is still allowed.
func IsReplaceable(createdAt, now time.Time) bool {
	return now.Sub(createdAt) <= ReplaceWindow
}

// ReplaceInput is the input for ReplaceInPlace.
type ReplaceInput struct {
	VersionID string
	Reason    string
	File      Upload
}

// ReplaceInPlace swaps a version's file without creating a new version. Admin
// only, and only within the replace window. The previous file is copied to a
// backup key before the overwrite; if the metadata write fails afterwards the
// original content is restored from that backup. The backup is retained on
// success and its key recorded in the audit trail.
func ReplaceInPlace(ctx context.Context, db *gorm.DB, store storage.BlobStore, in ReplaceInput, actor Actor) (*models.DocumentVersion, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorizationf("only administrators can replace a version's file")
	}
	if blankReason(in.Reason) {
		return nil, types.Validationf("a reason is required to replace a file")
	}
	if in.File.Name == "" || in.File.Data == nil {
		return nil, types.Validationf("a replacement file is required")
	}
	if in.File.Size <= 0 {
		return nil, types.Validationf("replacement file is empty")
	}

	v, err := GetVersion(db, in.VersionID)
	if err != nil {
		return nil, err
	}
	if !v.Active() {
		return nil, types.Preconditionf("version %s is deleted and cannot be replaced", v.ID)
	}
	if !IsReplaceable(v.CreatedAt, time.Now()) {
		return nil, types.Preconditionf("version %s is outside the %v replace window; mark it erroneous and upload a correction instead", v.ID, ReplaceWindow)
	}

	unlock := lockChain(v.ChainRootID)
	defer unlock()

	data, err := io.ReadAll(in.File.Data)
	if err != nil {
		return nil, types.Validationf("failed to read upload: %v", err)
	}

	backupKey := storage.BackupKey(v.ChainRootID, v.ID, v.OriginalName)
	if err := store.Copy(ctx, v.StorageKey, backupKey); err != nil {
		return nil, types.StorageErr("failed to back up the current file; nothing was changed", err)
	}

	if err := store.Put(ctx, v.StorageKey, bytes.NewReader(data), int64(len(data)), in.File.ContentType); err != nil {
		return nil, types.StorageErr("failed to write the replacement file; the original is untouched", err)
	}

	// The blob is already swapped; retry the metadata write before rolling
	// the content back.
	updates := map[string]interface{}{
		"size_bytes":    int64(len(data)),
		"mime_type":     in.File.ContentType,
		"original_name": in.File.Name,
	}
	writeMeta := func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.DocumentVersion{}).Where("id = ?", v.ID).Updates(updates).Error; err != nil {
				return err
			}
			return recordAudit(tx, models.AuditFileReplaced, v, actor, in.Reason, map[string]interface{}{
				"backup_key":    backupKey,
				"previous_name": v.OriginalName,
				"previous_size": v.SizeBytes,
				"new_name":      in.File.Name,
				"new_size":      int64(len(data)),
			})
		})
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(writeMeta, policy); err != nil {
		if restoreErr := store.Copy(ctx, backupKey, v.StorageKey); restoreErr != nil {
			log.Printf("Replace of %s failed and rollback from %s also failed: %v", v.ID, backupKey, restoreErr)
			return nil, types.StorageErr("metadata write failed and the original file could not be restored from "+backupKey, err)
		}
		return nil, types.StorageErr("metadata write failed; the original file was restored from backup", err)
	}

	return GetVersion(db, v.ID)
}
