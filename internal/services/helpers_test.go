package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/NRodriguezT98/ryr-documentos/internal/models"
	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/storage"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.DocumentVersion{},
		&models.Folder{},
		&models.AuditEntry{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func adminActor() services.Actor {
	return services.Actor{ID: "admin-1", Email: "admin@example.com", Roles: []string{services.RoleAdmin}}
}

func userActor() services.Actor {
	return services.Actor{ID: "user-1", Email: "user@example.com", Roles: []string{services.RoleUser}}
}

// createVersion uploads a payload as a new version and fails the test on error.
func createVersion(t *testing.T, db *gorm.DB, store storage.BlobStore, chainRootID, unitID, payload string) *models.DocumentVersion {
	t.Helper()
	v, err := services.CreateVersion(context.Background(), db, store, services.CreateVersionInput{
		ChainRootID:   chainRootID,
		HousingUnitID: unitID,
		ChangeNote:    "test upload",
		File: services.Upload{
			Name:        "escritura.pdf",
			ContentType: "application/pdf",
			Size:        int64(len(payload)),
			Data:        strings.NewReader(payload),
		},
	}, userActor())
	if err != nil {
		t.Fatalf("Failed to create version: %v", err)
	}
	return v
}

func wantKind(t *testing.T, err error, kind types.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %s error, got nil", kind)
	}
	if got := types.KindOf(err); got != kind {
		t.Fatalf("Expected %s error, got %s: %v", kind, got, err)
	}
}

func loadVersion(t *testing.T, db *gorm.DB, id string) *models.DocumentVersion {
	t.Helper()
	v, err := services.GetVersion(db, id)
	if err != nil {
		t.Fatalf("Failed to load version %s: %v", id, err)
	}
	return v
}

const deleteReason = "uploaded to the wrong housing unit by mistake"
