// documents.go
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

package handlers

import (
	"log"

	"github.com/NRodriguezT98/ryr-documentos/internal/middleware"
	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/storage"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"github.com/NRodriguezT98/ryr-documentos/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DocumentsHandler handles version chain routes
type DocumentsHandler struct {
	DB    *gorm.DB
	Store storage.BlobStore
}

// CreateVersion handles POST /api/docs/versions
// @Summary Upload a new document version
// @Description Upload a file as a new version; omit chain_root_id to start a new document
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File content"
// @Param chain_root_id formData string false "Existing chain to append to"
// @Param housing_unit_id formData string false "Housing unit (required for a new chain)"
// @Param category_id formData string false "Category ID"
// @Param folder_id formData string false "Folder ID"
// @Param change_note formData string false "What changed in this version"
// @Success 201 {object} models.DocumentVersion
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 412 {object} utils.ErrorResponseStruct
// @Router /docs/versions [post]
func (h *DocumentsHandler) CreateVersion(c *fiber.Ctx) error {
	up, closeFn, err := formUpload(c, "file")
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	defer func() {
		if err := closeFn(); err != nil {
			log.Printf("Failed to close upload: %v", err)
		}
	}()

	in := services.CreateVersionInput{
		ChainRootID:   c.FormValue("chain_root_id"),
		HousingUnitID: c.FormValue("housing_unit_id"),
		CategoryID:    optionalString(c, "category_id"),
		FolderID:      optionalString(c, "folder_id"),
		ChangeNote:    c.FormValue("change_note"),
		File:          up,
	}

	v, err := services.CreateVersion(c.Context(), h.DB, h.Store, in, middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, v, fiber.StatusCreated)
}

// GetChain handles GET /api/docs/:chainRoot/versions
// @Summary List a document's versions
// @Description All versions of a chain in version order, trash included
// @Tags Documents
// @Produce json
// @Param chainRoot path string true "Chain root ID"
// @Success 200 {array} models.DocumentVersion
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /docs/{chainRoot}/versions [get]
func (h *DocumentsHandler) GetChain(c *fiber.Ctx) error {
	chainRootID := c.Params("chainRoot")

	versions, err := services.ChainVersions(h.DB, chainRootID)
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(versions)
}

// GetDownloadURL handles GET /api/docs/versions/:id/url
// @Summary Get a signed download URL
// @Description Time-limited URL for the version's file
// @Tags Documents
// @Produce json
// @Param id path string true "Version ID"
// @Param ttl query int false "URL lifetime in seconds (default 3600)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /docs/versions/{id}/url [get]
func (h *DocumentsHandler) GetDownloadURL(c *fiber.Ctx) error {
	versionID := c.Params("id")

	var ttl types.FlexUint64
	if raw := c.Query("ttl"); raw != "" {
		if err := ttl.UnmarshalJSON([]byte(raw)); err != nil {
			return utils.EngineErrorResponse(c, types.Validationf("invalid ttl %q", raw))
		}
	}

	url, err := services.SignedDownloadURL(c.Context(), h.DB, h.Store, versionID, uint64(ttl))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": url})
}

// ReplaceFile handles PUT /api/docs/versions/:id/file
// @Summary Replace a version's file in place
// @Description Swap the file of a recent version without creating a new version; admin only, 48h window
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Version ID"
// @Param file formData file true "Replacement content"
// @Param reason formData string true "Why the file is being replaced"
// @Success 200 {object} models.DocumentVersion
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 412 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /docs/versions/{id}/file [put]
func (h *DocumentsHandler) ReplaceFile(c *fiber.Ctx) error {
	up, closeFn, err := formUpload(c, "file")
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	defer func() {
		if err := closeFn(); err != nil {
			log.Printf("Failed to close upload: %v", err)
		}
	}()

	in := services.ReplaceInput{
		VersionID: c.Params("id"),
		Reason:    c.FormValue("reason"),
		File:      up,
	}

	v, err := services.ReplaceInPlace(c.Context(), h.DB, h.Store, in, middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, v, fiber.StatusOK)
}

// GetAudit handles GET /api/docs/:chainRoot/audit
// @Summary Get a document's audit trail
// @Description All audit entries for the chain, oldest first
// @Tags Documents
// @Produce json
// @Param chainRoot path string true "Chain root ID"
// @Success 200 {array} models.AuditEntry
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /docs/{chainRoot}/audit [get]
func (h *DocumentsHandler) GetAudit(c *fiber.Ctx) error {
	entries, err := services.ListAudit(h.DB, c.Params("chainRoot"))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(entries)
}
