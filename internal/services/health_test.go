package services_test

import (
	"context"
	"testing"

	"github.com/NRodriguezT98/ryr-documentos/internal/config"
	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/storage"
)

// TestHealthCheckStorageUnreachable tests that a dead storage endpoint marks
// the service unhealthy even when the database responds.
func TestHealthCheckStorageUnreachable(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	cfg := &config.Config{
		DBType:          "sqlite",
		DBDatabase:      ":memory:",
		StorageEndpoint: "127.0.0.1:1",
		StorageBucket:   "documentos-test",
		AuthzURL:        "http://127.0.0.1:1",
	}

	result := services.HealthCheck(context.Background(), cfg, db, store)

	if result.Database != "ok" {
		t.Errorf("Expected database ok, got %s", result.Database)
	}
	if result.Storage != "unreachable" {
		t.Errorf("Expected storage unreachable, got %s", result.Storage)
	}
	if result.Status != "unhealthy" {
		t.Errorf("Expected status unhealthy, got %s", result.Status)
	}
	if result.ErrorMessage == "" {
		t.Error("Expected an error message naming the failed probe")
	}
}
