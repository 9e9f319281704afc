package handlers

import (
	"github.com/NRodriguezT98/ryr-documentos/internal/middleware"
	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"github.com/NRodriguezT98/ryr-documentos/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LifecycleHandler handles version state transition routes
type LifecycleHandler struct {
	DB *gorm.DB
}

type stateBody struct {
	Reason               string  `json:"reason"`
	CorrectedByVersionID *string `json:"correctedByVersionId"`
}

// MarkErroneous handles POST /api/docs/versions/:id/erroneous
// @Summary Flag a version as erroneous
// @Description Mark a version's content as wrong, optionally naming the version that corrects it
// @Tags Lifecycle
// @Accept json
// @Produce json
// @Param id path string true "Version ID"
// @Param body body stateBody true "Reason and optional correcting version"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /docs/versions/{id}/erroneous [post]
func (h *LifecycleHandler) MarkErroneous(c *fiber.Ctx) error {
	var body stateBody
	if err := c.BodyParser(&body); err != nil {
		return utils.EngineErrorResponse(c, types.Validationf("invalid body: %v", err))
	}

	err := services.MarkErroneous(h.DB, c.Params("id"), body.Reason, body.CorrectedByVersionID, middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, nil)
}

// MarkObsolete handles POST /api/docs/versions/:id/obsolete
// @Summary Flag a version as obsolete
// @Description Mark a version as correct for its time but superseded
// @Tags Lifecycle
// @Accept json
// @Produce json
// @Param id path string true "Version ID"
// @Param body body stateBody true "Reason"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /docs/versions/{id}/obsolete [post]
func (h *LifecycleHandler) MarkObsolete(c *fiber.Ctx) error {
	var body stateBody
	if err := c.BodyParser(&body); err != nil {
		return utils.EngineErrorResponse(c, types.Validationf("invalid body: %v", err))
	}

	err := services.MarkObsolete(h.DB, c.Params("id"), body.Reason, middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, nil)
}

// RestoreToValid handles POST /api/docs/versions/:id/valid
// @Summary Clear a version's flagged state
// @Description Return an erroneous or obsolete version to valid
// @Tags Lifecycle
// @Produce json
// @Param id path string true "Version ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /docs/versions/{id}/valid [post]
func (h *LifecycleHandler) RestoreToValid(c *fiber.Ctx) error {
	err := services.RestoreToValid(h.DB, c.Params("id"), middleware.ActorFromCtx(c))
	if err != nil {
		return utils.EngineErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, nil)
}
