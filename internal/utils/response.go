package utils

import (
	"time"

	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// EngineErrorResponse maps a lifecycle engine error onto the standard error
// envelope, deriving the HTTP status from the error kind. Conflicts carry a
// conflictError flag so clients can refresh and retry.
func EngineErrorResponse(c *fiber.Ctx, err error) error {
	status := types.StatusCode(err)
	kind := types.KindOf(err)

	body := fiber.Map{
		"status":    status,
		"message":   err.Error(),
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      string(kind),
	}
	if kind == types.KindConflict {
		body["conflictError"] = true
	}
	return c.Status(status).JSON(body)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// MutationSuccessResponse sends a success response for mutations (POST/DELETE)
func MutationSuccessResponse(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Success",
		"ok":        true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status        int    `json:"status"`
	Message       string `json:"message"`
	Ok            bool   `json:"ok"`
	Timestamp     string `json:"timestamp"`
	URL           string `json:"url"`
	Type          string `json:"type,omitempty"`
	ConflictError bool   `json:"conflictError,omitempty"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Message   string      `json:"message"`
	Ok        bool        `json:"ok"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}
