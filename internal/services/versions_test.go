package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/NRodriguezT98/ryr-documentos/internal/models"
	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/storage"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"gorm.io/gorm"
)

// plantConflictingRow registers a create callback that inserts a row claiming
// the same (chain_root_id, version_number) right before a version insert, as
// a racing writer would. each bounds how many attempts get sabotaged.
func plantConflictingRow(t *testing.T, db *gorm.DB, each int) {
	t.Helper()
	planted := 0
	inPlant := false
	err := db.Callback().Create().Before("gorm:create").Register("test_conflicting_writer", func(tx *gorm.DB) {
		v, ok := tx.Statement.Dest.(*models.DocumentVersion)
		if !ok || inPlant || planted >= each {
			return
		}
		planted++
		inPlant = true
		defer func() { inPlant = false }()

		intruder := models.DocumentVersion{
			ID:            fmt.Sprintf("intruder-%d", planted),
			ChainRootID:   v.ChainRootID,
			VersionNumber: v.VersionNumber,
			HousingUnitID: v.HousingUnitID,
		}
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(&intruder).Error; err != nil {
			t.Errorf("Failed to plant conflicting row: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}
}

// TestCreateVersionNewChain tests that the first upload starts a chain whose
// root id is the version's own id.
func TestCreateVersionNewChain(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	v := createVersion(t, db, store, "", "unit-1", "contenido v1")

	if v.ChainRootID != v.ID {
		t.Errorf("Expected root version to be its own chain root, got %s", v.ChainRootID)
	}
	if v.VersionNumber != 1 {
		t.Errorf("Expected version number 1, got %d", v.VersionNumber)
	}
	if !v.IsCurrent {
		t.Error("Expected the first version to be current")
	}
	if v.LifecycleState != models.StateValid {
		t.Errorf("Expected state valid, got %s", v.LifecycleState)
	}
	if !store.Has(v.StorageKey) {
		t.Error("Expected the uploaded blob to exist")
	}

	entries, err := services.ListAudit(db, v.ChainRootID)
	if err != nil {
		t.Fatalf("Failed to list audit: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != models.AuditVersionCreated {
		t.Errorf("Expected one version_created audit entry, got %+v", entries)
	}
}

// TestCreateVersionAppend tests sequential numbering and the current flip.
func TestCreateVersionAppend(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	v1 := createVersion(t, db, store, "", "unit-1", "contenido v1")
	v2 := createVersion(t, db, store, v1.ChainRootID, "", "contenido v2")
	v3 := createVersion(t, db, store, v1.ChainRootID, "", "contenido v3")

	if v2.VersionNumber != 2 || v3.VersionNumber != 3 {
		t.Errorf("Expected version numbers 2 and 3, got %d and %d", v2.VersionNumber, v3.VersionNumber)
	}
	if v2.HousingUnitID != "unit-1" {
		t.Errorf("Expected housing unit inherited from the chain, got %q", v2.HousingUnitID)
	}

	// Only the latest version is current
	for _, tc := range []struct {
		id   string
		want bool
	}{{v1.ID, false}, {v2.ID, false}, {v3.ID, true}} {
		if got := loadVersion(t, db, tc.id).IsCurrent; got != tc.want {
			t.Errorf("Version %s: expected is_current=%v, got %v", tc.id, tc.want, got)
		}
	}
}

// TestCreateVersionRequiresFile tests upload validation.
func TestCreateVersionRequiresFile(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	_, err := services.CreateVersion(context.Background(), db, store, services.CreateVersionInput{
		HousingUnitID: "unit-1",
	}, userActor())
	wantKind(t, err, types.KindValidation)

	_, err = services.CreateVersion(context.Background(), db, store, services.CreateVersionInput{
		HousingUnitID: "unit-1",
		File: services.Upload{
			Name: "vacio.pdf",
			Size: 0,
			Data: strings.NewReader(""),
		},
	}, userActor())
	wantKind(t, err, types.KindValidation)
}

// TestCreateVersionUploadFailure tests that a failed upload leaves no record.
func TestCreateVersionUploadFailure(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()
	store.FailPut = true

	_, err := services.CreateVersion(context.Background(), db, store, services.CreateVersionInput{
		HousingUnitID: "unit-1",
		File: services.Upload{
			Name:        "escritura.pdf",
			ContentType: "application/pdf",
			Size:        4,
			Data:        strings.NewReader("data"),
		},
	}, userActor())
	wantKind(t, err, types.KindStorage)

	var count int64
	db.Model(&models.DocumentVersion{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no version records after upload failure, got %d", count)
	}
}

// TestCreateVersionNumberRaceRetries tests losing the version-number race
// once: the first insert hits the unique index and the recomputed retry
// lands the version.
func TestCreateVersionNumberRaceRetries(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	v1 := createVersion(t, db, store, "", "unit-1", "v1")
	plantConflictingRow(t, db, 1)

	v2 := createVersion(t, db, store, v1.ChainRootID, "", "v2")
	if v2.VersionNumber != 2 {
		t.Errorf("Expected version number 2 after the retry, got %d", v2.VersionNumber)
	}
	if !loadVersion(t, db, v2.ID).IsCurrent {
		t.Error("Expected the retried version to be current")
	}

	var count int64
	db.Model(&models.DocumentVersion{}).Where("chain_root_id = ?", v1.ChainRootID).Count(&count)
	if count != 2 {
		t.Errorf("Expected 2 versions in the chain, got %d", count)
	}
}

// TestCreateVersionNumberRaceConflict tests losing the race twice: the call
// gives up with a conflict and removes its uploaded blob.
func TestCreateVersionNumberRaceConflict(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	v1 := createVersion(t, db, store, "", "unit-1", "v1")
	plantConflictingRow(t, db, 2)

	_, err := services.CreateVersion(context.Background(), db, store, services.CreateVersionInput{
		ChainRootID: v1.ChainRootID,
		File: services.Upload{
			Name:        "escritura.pdf",
			ContentType: "application/pdf",
			Size:        4,
			Data:        strings.NewReader("data"),
		},
	}, userActor())
	wantKind(t, err, types.KindConflict)

	if store.Len() != 1 {
		t.Errorf("Expected only the first version's blob to remain, got %d objects", store.Len())
	}
}

// TestCreateVersionRecordFailureCleansBlob tests that a transaction failure
// after a successful upload removes the uploaded blob and leaves no record.
func TestCreateVersionRecordFailureCleansBlob(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	if err := db.Migrator().DropTable(&models.AuditEntry{}); err != nil {
		t.Fatalf("Failed to drop audit table: %v", err)
	}

	_, err := services.CreateVersion(context.Background(), db, store, services.CreateVersionInput{
		HousingUnitID: "unit-1",
		File: services.Upload{
			Name:        "escritura.pdf",
			ContentType: "application/pdf",
			Size:        4,
			Data:        strings.NewReader("data"),
		},
	}, userActor())
	if err == nil {
		t.Fatal("Expected the creation to fail")
	}

	if store.Len() != 0 {
		t.Errorf("Expected the uploaded blob removed, got %d objects", store.Len())
	}
	var count int64
	db.Model(&models.DocumentVersion{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no version records, got %d", count)
	}
}

// TestCreateVersionCurrentlessChain tests that appending to a chain whose
// current version sits in the trash is rejected until a restore.
func TestCreateVersionCurrentlessChain(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	v1 := createVersion(t, db, store, "", "unit-1", "contenido v1")
	if err := services.SoftDelete(db, v1.ID, deleteReason, adminActor()); err != nil {
		t.Fatalf("Failed to soft delete: %v", err)
	}

	_, err := services.CreateVersion(context.Background(), db, store, services.CreateVersionInput{
		ChainRootID: v1.ChainRootID,
		File: services.Upload{
			Name:        "escritura.pdf",
			ContentType: "application/pdf",
			Size:        4,
			Data:        strings.NewReader("data"),
		},
	}, userActor())
	wantKind(t, err, types.KindPrecondition)
}

// TestCreateVersionAuthorization tests that an actor without edit rights is
// rejected before any side effect.
func TestCreateVersionAuthorization(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	_, err := services.CreateVersion(context.Background(), db, store, services.CreateVersionInput{
		HousingUnitID: "unit-1",
		File: services.Upload{
			Name:        "escritura.pdf",
			ContentType: "application/pdf",
			Size:        4,
			Data:        strings.NewReader("data"),
		},
	}, services.Actor{ID: "nobody", Roles: []string{"viewer"}})
	wantKind(t, err, types.KindAuthorization)

	if store.PutCount() != 0 {
		t.Error("Expected no upload for an unauthorized actor")
	}
}

// TestGetChainOrderAndRestart tests the lazy chain sequence: ascending order,
// restartable, early break.
func TestGetChainOrderAndRestart(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	v1 := createVersion(t, db, store, "", "unit-1", "v1")
	createVersion(t, db, store, v1.ChainRootID, "", "v2")
	createVersion(t, db, store, v1.ChainRootID, "", "v3")

	seq := services.GetChain(db, v1.ChainRootID)

	var nums []int
	for v, err := range seq {
		if err != nil {
			t.Fatalf("Chain iteration failed: %v", err)
		}
		nums = append(nums, v.VersionNumber)
	}
	if len(nums) != 3 || nums[0] != 1 || nums[2] != 3 {
		t.Errorf("Expected versions 1..3 in order, got %v", nums)
	}

	// The same sequence value can be ranged again
	count := 0
	for _, err := range seq {
		if err != nil {
			t.Fatalf("Second iteration failed: %v", err)
		}
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("Expected early break after 2, got %d", count)
	}
}

// TestChainVersionsNotFound tests the collected form for a missing chain.
func TestChainVersionsNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.ChainVersions(db, "no-such-chain")
	wantKind(t, err, types.KindNotFound)
}

// TestSignedDownloadURL tests URL signing with the default TTL.
func TestSignedDownloadURL(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	v := createVersion(t, db, store, "", "unit-1", "contenido")

	url, err := services.SignedDownloadURL(context.Background(), db, store, v.ID, 0)
	if err != nil {
		t.Fatalf("Failed to sign URL: %v", err)
	}
	if !strings.Contains(url, v.StorageKey) {
		t.Errorf("Expected URL to reference the storage key, got %s", url)
	}

	_, err = services.SignedDownloadURL(context.Background(), db, store, "missing", 0)
	wantKind(t, err, types.KindNotFound)
}
