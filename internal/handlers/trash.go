// trash.go
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
	"github.com/NRodriguezT98/ryr-documentos/internal/middleware"
	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/storage"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"github.com/NRodriguezT98/ryr-documentos/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TrashHandler handles soft delete, restore, and purge routes
type TrashHandler struct {
	DB    *gorm.DB
	Store storage.BlobStore
}

// DeleteVersion handles DELETE /api/docs/versions/:id
// @Summary Soft-delete one version
// @Description Move a single version to the trash; admin only, detailed reason required
// @Tags Trash
// @Accept json
// @Produce json
// @Param id path string true "Version ID"
// @Param body body reasonBody true "Deletion reason (min 20 chars)"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 412 {object} utils.ErrorResponseStruct
// @Router /docs/versions/{id} [delete]
func (h *TrashHandler) DeleteVersion(c *fiber.Ctx) error {
	var body reasonBody
	if err := c.BodyParser(&body); err != nil {
		return utils.EngineErrorResponse(c, types.Validationf("invalid body: %v", err))
	}

	err := services.SoftDelete(h.DB, c.Params("id"), body.Reason, middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, nil)
}

// DeleteChain handles DELETE /api/docs/:chainRoot
// @Summary Soft-delete an entire document
// @Description Move every active version of a chain to the trash in one transaction
// @Tags Trash
// @Accept json
// @Produce json
// @Param chainRoot path string true "Chain root ID"
// @Param body body reasonBody true "Deletion reason (min 20 chars)"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /docs/{chainRoot} [delete]
func (h *TrashHandler) DeleteChain(c *fiber.Ctx) error {
	var body reasonBody
	if err := c.BodyParser(&body); err != nil {
		return utils.EngineErrorResponse(c, types.Validationf("invalid body: %v", err))
	}

	err := services.SoftDeleteChain(h.DB, c.Params("chainRoot"), body.Reason, middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, nil)
}

// ListTrash handles GET /api/docs/trash
// @Summary List trashed versions
// @Description Soft-deleted versions grouped by document, optionally filtered by chain
// @Tags Trash
// @Produce json
// @Param chain_root_id query string false "Narrow to one document"
// @Success 200 {array} services.DeletedChain
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /docs/trash [get]
func (h *TrashHandler) ListTrash(c *fiber.Ctx) error {
	chains, err := services.ListDeleted(h.DB, c.Query("chain_root_id"))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(chains)
}

type restoreBody struct {
	IDs types.FlexList[string] `json:"ids"`
}

// RestoreVersions handles POST /api/docs/trash/restore
// @Summary Restore trashed versions
// @Description Bring one or more soft-deleted versions back to active; reports per-id outcomes
// @Tags Trash
// @Accept json
// @Produce json
// @Param body body restoreBody true "Version id or list of ids"
// @Success 200 {object} services.RestoreReport
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /docs/trash/restore [post]
func (h *TrashHandler) RestoreVersions(c *fiber.Ctx) error {
	var body restoreBody
	if err := c.BodyParser(&body); err != nil {
		return utils.EngineErrorResponse(c, types.Validationf("invalid body: %v", err))
	}

	report, err := services.Restore(h.DB, body.IDs.Slice(), middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}

	status := fiber.StatusOK
	if report.Failed() {
		// Partial success still reports every outcome
		status = fiber.StatusMultiStatus
	}
	return c.Status(status).JSON(report)
}

// RequestPurge handles POST /api/docs/versions/:id/purge
// @Summary Request a permanent purge
// @Description First step of the two-step purge; returns a short-lived confirmation ticket
// @Tags Trash
// @Accept json
// @Produce json
// @Param id path string true "Version ID"
// @Param body body reasonBody true "Purge reason (min 20 chars)"
// @Success 200 {object} services.PurgeTicket
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 412 {object} utils.ErrorResponseStruct
// @Router /docs/versions/{id}/purge [post]
func (h *TrashHandler) RequestPurge(c *fiber.Ctx) error {
	var body reasonBody
	if err := c.BodyParser(&body); err != nil {
		return utils.EngineErrorResponse(c, types.Validationf("invalid body: %v", err))
	}

	ticket, err := services.RequestPurge(h.DB, c.Params("id"), body.Reason, middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ticket)
}

type confirmPurgeBody struct {
	Token   string `json:"token"`
	Confirm string `json:"confirm"`
}

// ConfirmPurge handles POST /api/docs/purge/confirm
// @Summary Confirm a permanent purge
// @Description Second step of the purge; requires the ticket token and the confirmation text
// @Tags Trash
// @Accept json
// @Produce json
// @Param body body confirmPurgeBody true "Ticket token and confirmation text"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 412 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /docs/purge/confirm [post]
func (h *TrashHandler) ConfirmPurge(c *fiber.Ctx) error {
	var body confirmPurgeBody
	if err := c.BodyParser(&body); err != nil {
		return utils.EngineErrorResponse(c, types.Validationf("invalid body: %v", err))
	}

	err := services.ConfirmPurge(c.Context(), h.DB, h.Store, body.Token, body.Confirm, middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, nil)
}
