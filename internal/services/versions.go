// versions.go
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
	"errors"
	"io"
	"iter"
	"log"
	"strings"
	"sync"

	"github.com/NRodriguezT98/ryr-documentos/internal/models"
	"github.com/NRodriguezT98/ryr-documentos/internal/storage"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// chainBatchSize is the page size used by the chain iterator.
const chainBatchSize = 100

// chainLocks serializes CreateVersion and ReplaceInPlace per chain within
// this process. The (chain_root_id, version_number) unique index is the
// cross-process guard. Entries are never evicted; the map grows by one
// mutex per chain touched during the process lifetime.
var chainLocks sync.Map

func lockChain(chainRootID string) func() {
	muIface, ok := chainLocks.Load(chainRootID)
	if !ok {
		// The key outlives the request; Fiber params and form values are
		// backed by reusable buffers, so store a copy.
		muIface, _ = chainLocks.LoadOrStore(strings.Clone(chainRootID), &sync.Mutex{})
	}
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Upload carries an incoming file and its declared metadata.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Data        io.Reader
}

// CreateVersionInput is the input for CreateVersion. An empty ChainRootID
// starts a new document chain.
type CreateVersionInput struct {
	ChainRootID   string
	HousingUnitID string
	CategoryID    *string
	FolderID      *string
	ChangeNote    string
	File          Upload
}

// CreateVersion uploads the file and appends a new version to the chain,
// flipping the previous current version off in the same transaction. If the
// record write fails after the upload, the uploaded blob is deleted. A racing
// writer losing the (chain_root_id, version_number) uniqueness check is
// retried once with a recomputed version number.
func CreateVersion(ctx context.Context, db *gorm.DB, store storage.BlobStore, in CreateVersionInput, actor Actor) (*models.DocumentVersion, error) {
	if !actor.CanEdit() {
		return nil, types.Authorizationf("actor %s lacks the edit capability", actor.ID)
	}
	if in.File.Name == "" || in.File.Data == nil {
		return nil, types.Validationf("a file is required")
	}
	if in.File.Size <= 0 {
		return nil, types.Validationf("file is empty")
	}
	if in.ChainRootID == "" && in.HousingUnitID == "" {
		return nil, types.Validationf("housing unit id is required for a new document")
	}

	newChain := in.ChainRootID == ""
	versionID := uuid.NewString()
	chainRootID := in.ChainRootID
	if newChain {
		// The root version is its own chain root.
		chainRootID = versionID
	}

	unlock := lockChain(chainRootID)
	defer unlock()

	housingUnitID := in.HousingUnitID
	categoryID := in.CategoryID
	folderID := in.FolderID

	if !newChain {
		root, err := GetVersion(db, chainRootID)
		if err != nil {
			return nil, err
		}
		// New versions inherit unit/category/folder from the chain.
		housingUnitID = root.HousingUnitID
		if categoryID == nil {
			categoryID = root.CategoryID
		}
		if folderID == nil {
			folderID = root.FolderID
		}

		// The chain must be in a resumable state: if it has versions but no
		// active current one, the caller has to restore from the trash first.
		var current models.DocumentVersion
		err = db.Where("chain_root_id = ? AND is_current = ? AND lifecycle_status = ?",
			chainRootID, true, models.StatusActive).First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Preconditionf("chain %s has no active current version; restore it before adding a new version", chainRootID)
		}
		if err != nil {
			return nil, err
		}
	}

	// Read the payload once so the storage layer can retry uploads.
	data, err := io.ReadAll(in.File.Data)
	if err != nil {
		return nil, types.Validationf("failed to read upload: %v", err)
	}

	key := storage.VersionKey(chainRootID, in.File.Name)
	if err := store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), in.File.ContentType); err != nil {
		return nil, types.StorageErr("failed to upload file", err)
	}

	version := &models.DocumentVersion{
		ID:              versionID,
		ChainRootID:     chainRootID,
		IsCurrent:       true,
		LifecycleState:  models.StateValid,
		LifecycleStatus: models.StatusActive,
		StorageKey:      key,
		SizeBytes:       int64(len(data)),
		MimeType:        in.File.ContentType,
		OriginalName:    in.File.Name,
		HousingUnitID:   housingUnitID,
		CategoryID:      categoryID,
		FolderID:        folderID,
		ChangeNote:      in.ChangeNote,
		CreatedBy:       actor.ID,
	}

	insert := func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			var maxVersion int
			if err := tx.Model(&models.DocumentVersion{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("chain_root_id = ?", chainRootID).
				Select("COALESCE(MAX(version_number), 0)").
				Scan(&maxVersion).Error; err != nil {
				return err
			}
			version.VersionNumber = maxVersion + 1

			if err := tx.Model(&models.DocumentVersion{}).
				Where("chain_root_id = ? AND is_current = ?", chainRootID, true).
				Update("is_current", false).Error; err != nil {
				return err
			}

			if err := tx.Create(version).Error; err != nil {
				return err
			}

			return recordAudit(tx, models.AuditVersionCreated, version, actor, in.ChangeNote, map[string]interface{}{
				"version_number": version.VersionNumber,
				"storage_key":    key,
				"size_bytes":     version.SizeBytes,
				"mime_type":      version.MimeType,
			})
		})
	}

	err = insert()
	if isDuplicateKey(err) {
		// Another writer claimed our version number; recompute once.
		err = insert()
		if isDuplicateKey(err) {
			err = types.Conflictf("chain %s version assignment raced twice; retry the upload", chainRootID)
		}
	}
	if err != nil {
		// Compensate: the record never landed, remove the uploaded blob.
		if delErr := store.Delete(ctx, key); delErr != nil {
			log.Printf("Failed to clean up orphaned blob %s: %v", key, delErr)
		}
		return nil, err
	}

	return version, nil
}

// isDuplicateKey reports whether err is a uniqueness violation on the
// version-number index.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}

// GetVersion fetches one version by id.
func GetVersion(db *gorm.DB, versionID string) (*models.DocumentVersion, error) {
	var v models.DocumentVersion
	err := db.Where("id = ?", versionID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFoundf("version %s not found", versionID)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetChain returns the chain as a lazy, restartable sequence ordered by
// version number ascending, soft-deleted versions included. Each range over
// the sequence re-reads the store in keyset-paginated batches.
func GetChain(db *gorm.DB, chainRootID string) iter.Seq2[models.DocumentVersion, error] {
	return func(yield func(models.DocumentVersion, error) bool) {
		last := 0
		for {
			var batch []models.DocumentVersion
			err := db.Where("chain_root_id = ? AND version_number > ?", chainRootID, last).
				Order("version_number ASC").
				Limit(chainBatchSize).
				Find(&batch).Error
			if err != nil {
				yield(models.DocumentVersion{}, err)
				return
			}
			for _, v := range batch {
				if !yield(v, nil) {
					return
				}
				last = v.VersionNumber
			}
			if len(batch) < chainBatchSize {
				return
			}
		}
	}
}

// ChainVersions collects the whole chain into a slice.
func ChainVersions(db *gorm.DB, chainRootID string) ([]models.DocumentVersion, error) {
	var out []models.DocumentVersion
	for v, err := range GetChain(db, chainRootID) {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, types.NotFoundf("document %s not found", chainRootID)
	}
	return out, nil
}

// CountActiveVersions returns the number of non-soft-deleted versions in a chain.
func CountActiveVersions(db *gorm.DB, chainRootID string) (int64, error) {
	var n int64
	err := db.Model(&models.DocumentVersion{}).
		Where("chain_root_id = ? AND lifecycle_status = ?", chainRootID, models.StatusActive).
		Count(&n).Error
	return n, err
}

// SignedDownloadURL returns a presigned URL for the version's file.
func SignedDownloadURL(ctx context.Context, db *gorm.DB, store storage.BlobStore, versionID string, ttlSeconds uint64) (string, error) {
	v, err := GetVersion(db, versionID)
	if err != nil {
		return "", err
	}
	if ttlSeconds == 0 {
		ttlSeconds = 3600
	}
	url, err := store.SignedURL(ctx, v.StorageKey, secondsToDuration(ttlSeconds))
	if err != nil {
		return "", types.StorageErr("failed to sign download URL", err)
	}
	return url, nil
}
