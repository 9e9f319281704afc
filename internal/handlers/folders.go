package handlers

import (
	"github.com/NRodriguezT98/ryr-documentos/internal/middleware"
	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"github.com/NRodriguezT98/ryr-documentos/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FoldersHandler handles folder hierarchy routes
type FoldersHandler struct {
	DB *gorm.DB
}

type folderBody struct {
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	ParentID *string `json:"parentId"`
}

// CreateFolder handles POST /api/units/:unit/folders
// @Summary Create a folder
// @Description Create a folder for a housing unit, optionally nested
// @Tags Folders
// @Accept json
// @Produce json
// @Param unit path string true "Housing unit ID"
// @Param body body folderBody true "Folder name, color, optional parent"
// @Success 201 {object} models.Folder
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /units/{unit}/folders [post]
func (h *FoldersHandler) CreateFolder(c *fiber.Ctx) error {
	var body folderBody
	if err := c.BodyParser(&body); err != nil {
		return utils.EngineErrorResponse(c, types.Validationf("invalid body: %v", err))
	}

	f, err := services.CreateFolder(h.DB, services.CreateFolderInput{
		HousingUnitID: c.Params("unit"),
		Name:          body.Name,
		Color:         body.Color,
		ParentID:      body.ParentID,
	}, middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, f, fiber.StatusCreated)
}

// GetFolderTree handles GET /api/units/:unit/folders
// @Summary Get a unit's folder tree
// @Description Full folder hierarchy with recursive document counts
// @Tags Folders
// @Produce json
// @Param unit path string true "Housing unit ID"
// @Success 200 {array} services.FolderNode
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /units/{unit}/folders [get]
func (h *FoldersHandler) GetFolderTree(c *fiber.Ctx) error {
	tree, err := services.FolderTree(h.DB, c.Params("unit"))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tree)
}

// UpdateFolder handles PUT /api/docs/folders/:id
// @Summary Rename a folder
// @Description Update a folder's name and color
// @Tags Folders
// @Accept json
// @Produce json
// @Param id path string true "Folder ID"
// @Param body body folderBody true "New name and color"
// @Success 200 {object} models.Folder
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /docs/folders/{id} [put]
func (h *FoldersHandler) UpdateFolder(c *fiber.Ctx) error {
	var body folderBody
	if err := c.BodyParser(&body); err != nil {
		return utils.EngineErrorResponse(c, types.Validationf("invalid body: %v", err))
	}

	f, err := services.RenameFolder(h.DB, c.Params("id"), body.Name, body.Color, middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, f, fiber.StatusOK)
}

type moveFolderBody struct {
	ParentID *string `json:"parentId"`
}

// MoveFolder handles PATCH /api/docs/folders/:id/parent
// @Summary Move a folder
// @Description Re-parent a folder; moving under a descendant is rejected
// @Tags Folders
// @Accept json
// @Produce json
// @Param id path string true "Folder ID"
// @Param body body moveFolderBody true "New parent, null for top level"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /docs/folders/{id}/parent [patch]
func (h *FoldersHandler) MoveFolder(c *fiber.Ctx) error {
	var body moveFolderBody
	if err := c.BodyParser(&body); err != nil {
		return utils.EngineErrorResponse(c, types.Validationf("invalid body: %v", err))
	}

	err := services.MoveFolder(h.DB, c.Params("id"), body.ParentID, middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, nil)
}

// DeleteFolder handles DELETE /api/docs/folders/:id
// @Summary Delete an empty folder
// @Description Remove a folder holding no documents and no subfolders
// @Tags Folders
// @Produce json
// @Param id path string true "Folder ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 412 {object} utils.ErrorResponseStruct
// @Router /docs/folders/{id} [delete]
func (h *FoldersHandler) DeleteFolder(c *fiber.Ctx) error {
	err := services.DeleteFolder(h.DB, c.Params("id"), middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, nil)
}

type assignFolderBody struct {
	FolderID *string `json:"folderId"`
}

// AssignChainFolder handles PATCH /api/docs/:chainRoot/folder
// @Summary File a document into a folder
// @Description Move every active version of a chain into a folder; null unfiles it
// @Tags Folders
// @Accept json
// @Produce json
// @Param chainRoot path string true "Chain root ID"
// @Param body body assignFolderBody true "Target folder, null to unfile"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /docs/{chainRoot}/folder [patch]
func (h *FoldersHandler) AssignChainFolder(c *fiber.Ctx) error {
	var body assignFolderBody
	if err := c.BodyParser(&body); err != nil {
		return utils.EngineErrorResponse(c, types.Validationf("invalid body: %v", err))
	}

	err := services.AssignChainFolder(h.DB, c.Params("chainRoot"), body.FolderID, middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, nil)
}
