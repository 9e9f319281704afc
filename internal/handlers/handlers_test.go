package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/NRodriguezT98/ryr-documentos/internal/handlers"
	"github.com/NRodriguezT98/ryr-documentos/internal/middleware"
	"github.com/NRodriguezT98/ryr-documentos/internal/models"
	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/storage"
	"github.com/gofiber/fiber/v2"
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

// asActor stands in for the session middleware during tests.
func asActor(a services.Actor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.ActorKey, a)
		return c.Next()
	}
}

func admin() services.Actor {
	return services.Actor{ID: "admin-1", Email: "admin@example.com", Roles: []string{services.RoleAdmin}}
}

func user() services.Actor {
	return services.Actor{ID: "user-1", Email: "user@example.com", Roles: []string{services.RoleUser}}
}

// multipartBody builds a multipart request body with an optional file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename, payload string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write field %s: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("Failed to create file part: %v", err)
		}
		if _, err := fw.Write([]byte(payload)); err != nil {
			t.Fatalf("Failed to write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

// uploadVersion posts a file through the handler and decodes the created version.
func uploadVersion(t *testing.T, app *fiber.App, unitID, chainRootID, payload string) models.DocumentVersion {
	t.Helper()
	fields := map[string]string{}
	if unitID != "" {
		fields["housing_unit_id"] = unitID
	}
	if chainRootID != "" {
		fields["chain_root_id"] = chainRootID
	}
	body, contentType := multipartBody(t, fields, "file", "escritura.pdf", payload)

	req := httptest.NewRequest("POST", "/api/docs/versions", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var v models.DocumentVersion
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return v
}

// TestCreateVersionEndpoint tests the POST /api/docs/versions endpoint
func TestCreateVersionEndpoint(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	app := fiber.New()
	handler := &handlers.DocumentsHandler{DB: db, Store: store}
	app.Post("/api/docs/versions", asActor(user()), handler.CreateVersion)

	v1 := uploadVersion(t, app, "unit-1", "", "primera version")
	if v1.VersionNumber != 1 || !v1.IsCurrent {
		t.Errorf("Expected current version 1, got %d current=%v", v1.VersionNumber, v1.IsCurrent)
	}
	if v1.ChainRootID != v1.ID {
		t.Errorf("Expected root version to anchor its own chain, got %s", v1.ChainRootID)
	}

	v2 := uploadVersion(t, app, "", v1.ChainRootID, "segunda version")
	if v2.VersionNumber != 2 || !v2.IsCurrent {
		t.Errorf("Expected current version 2, got %d current=%v", v2.VersionNumber, v2.IsCurrent)
	}
}

// TestCreateVersionEndpointMissingFile tests the error envelope for a bad upload
func TestCreateVersionEndpointMissingFile(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	app := fiber.New()
	handler := &handlers.DocumentsHandler{DB: db, Store: store}
	app.Post("/api/docs/versions", asActor(user()), handler.CreateVersion)

	body, contentType := multipartBody(t, map[string]string{"housing_unit_id": "unit-1"}, "", "", "")
	req := httptest.NewRequest("POST", "/api/docs/versions", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["ok"] != false {
		t.Error("Expected ok=false in response")
	}
	if result["type"] != "validation" {
		t.Errorf("Expected type=validation, got %v", result["type"])
	}
	if result["url"] == nil || result["timestamp"] == nil {
		t.Error("Expected url and timestamp in the error envelope")
	}
}

// TestGetChainEndpoint tests the GET /api/docs/:chainRoot/versions endpoint
func TestGetChainEndpoint(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	app := fiber.New()
	docs := &handlers.DocumentsHandler{DB: db, Store: store}
	app.Post("/api/docs/versions", asActor(user()), docs.CreateVersion)
	app.Get("/api/docs/:chainRoot/versions", asActor(user()), docs.GetChain)

	v1 := uploadVersion(t, app, "unit-1", "", "v1")
	uploadVersion(t, app, "", v1.ChainRootID, "v2")

	req := httptest.NewRequest("GET", "/api/docs/"+v1.ChainRootID+"/versions", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var versions []models.DocumentVersion
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("Expected 2 versions, got %d", len(versions))
	}
	if versions[0].VersionNumber != 1 || versions[1].VersionNumber != 2 {
		t.Error("Expected versions in ascending order")
	}

	// Unknown chain
	req = httptest.NewRequest("GET", "/api/docs/nonexistent/versions", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

// TestDownloadURLEndpoint tests the GET /api/docs/versions/:id/url endpoint
func TestDownloadURLEndpoint(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	app := fiber.New()
	docs := &handlers.DocumentsHandler{DB: db, Store: store}
	app.Post("/api/docs/versions", asActor(user()), docs.CreateVersion)
	app.Get("/api/docs/versions/:id/url", asActor(user()), docs.GetDownloadURL)

	v := uploadVersion(t, app, "unit-1", "", "contenido")

	req := httptest.NewRequest("GET", "/api/docs/versions/"+v.ID+"/url?ttl=600", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["url"] == nil || result["url"] == "" {
		t.Error("Expected a signed url in response")
	}

	// Garbage ttl
	req = httptest.NewRequest("GET", "/api/docs/versions/"+v.ID+"/url?ttl=abc", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

// TestReplaceFileEndpoint tests the PUT /api/docs/versions/:id/file endpoint
func TestReplaceFileEndpoint(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	app := fiber.New()
	docs := &handlers.DocumentsHandler{DB: db, Store: store}
	app.Post("/api/docs/versions", asActor(user()), docs.CreateVersion)
	app.Put("/api/docs/versions/:id/file", asActor(admin()), docs.ReplaceFile)

	v := uploadVersion(t, app, "unit-1", "", "pagina equivocada")

	body, contentType := multipartBody(t,
		map[string]string{"reason": "se escaneo la pagina equivocada"},
		"file", "corregido.pdf", "pagina correcta")
	req := httptest.NewRequest("PUT", "/api/docs/versions/"+v.ID+"/file", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var updated models.DocumentVersion
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if updated.ID != v.ID || updated.VersionNumber != v.VersionNumber {
		t.Error("Expected the same version identity after replacement")
	}
	if updated.OriginalName != "corregido.pdf" {
		t.Errorf("Expected replaced file name, got %s", updated.OriginalName)
	}
}

// TestReplaceFileEndpointForbidden tests that non-admins cannot replace files
func TestReplaceFileEndpointForbidden(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	app := fiber.New()
	docs := &handlers.DocumentsHandler{DB: db, Store: store}
	app.Post("/api/docs/versions", asActor(user()), docs.CreateVersion)
	app.Put("/api/docs/versions/:id/file", asActor(user()), docs.ReplaceFile)

	v := uploadVersion(t, app, "unit-1", "", "contenido")

	body, contentType := multipartBody(t,
		map[string]string{"reason": "se escaneo la pagina equivocada"},
		"file", "corregido.pdf", "otro contenido")
	req := httptest.NewRequest("PUT", "/api/docs/versions/"+v.ID+"/file", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["type"] != "authorization" {
		t.Errorf("Expected type=authorization, got %v", result["type"])
	}
}

// TestLifecycleEndpoints tests the state transition endpoints
func TestLifecycleEndpoints(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemoryStore()

	app := fiber.New()
	docs := &handlers.DocumentsHandler{DB: db, Store: store}
	lifecycle := &handlers.LifecycleHandler{DB: db}
	app.Post("/api/docs/versions", asActor(user()), docs.CreateVersion)
	app.Post("/api/docs/versions/:id/erroneous", asActor(user()), lifecycle.MarkErroneous)
	app.Post("/api/docs/versions/:id/obsolete", asActor(user()), lifecycle.MarkObsolete)
	app.Post("/api/docs/versions/:id/valid", asActor(user()), lifecycle.RestoreToValid)

	v1 := uploadVersion(t, app, "unit-1", "", "v1")
	v2 := uploadVersion(t, app, "", v1.ChainRootID, "v2")

	payload, _ := json.Marshal(map[string]interface{}{
		"reason":               "monto equivocado en la clausula tercera",
		"correctedByVersionId": v2.ID,
	})
	req := httptest.NewRequest("POST", "/api/docs/versions/"+v1.ID+"/erroneous", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var stored models.DocumentVersion
	if err := db.First(&stored, "id = ?", v1.ID).Error; err != nil {
		t.Fatalf("Failed to load version: %v", err)
	}
	if stored.LifecycleState != models.StateErroneous {
		t.Errorf("Expected erroneous state, got %s", stored.LifecycleState)
	}
	if stored.CorrectedByVersionID == nil || *stored.CorrectedByVersionID != v2.ID {
		t.Error("Expected the correction link to be stored")
	}

	// Missing reason is rejected
	req = httptest.NewRequest("POST", "/api/docs/versions/"+v1.ID+"/obsolete", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	// Back to valid
	req = httptest.NewRequest("POST", "/api/docs/versions/"+v1.ID+"/valid", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if err := db.First(&stored, "id = ?", v1.ID).Error; err != nil {
		t.Fatalf("Failed to load version: %v", err)
	}
	if stored.LifecycleState != models.StateValid || stored.StateReason != "" {
		t.Errorf("Expected a clean valid state, got %s %q", stored.LifecycleState, stored.StateReason)
	}
}
