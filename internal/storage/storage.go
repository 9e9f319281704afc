// Package storage is the blob-store adapter behind the document engine.
// Objects are namespaced by chain root id; the engine never derives meaning
// from keys beyond that prefix.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// BlobStore is the opaque object-store collaborator. Implementations must be
// idempotent by key; the engine retries transient failures.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Copy(ctx context.Context, srcKey, dstKey string) error
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Ping(ctx context.Context) error
}

// VersionKey derives a fresh storage key for a new version's file,
// namespaced under the chain root.
func VersionKey(chainRootID, originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%s/%d-%s%s", chainRootID, time.Now().UnixMilli(), uuid.NewString(), ext)
}

// BackupKey derives the backup location for a replace-in-place operation,
// tagged with the version id and a fresh uuid so successive replacements of
// the same version never collide.
func BackupKey(chainRootID, versionID, originalName string) string {
	return fmt.Sprintf("%s/backups/%s_%d_%s_%s", chainRootID, versionID, time.Now().UnixMilli(), uuid.NewString(), originalName)
}
