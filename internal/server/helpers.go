package server

import (
	"errors"

	"plume/internal/middleware"
	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	var validationErrs *models.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "PERMISSION_DENIED":
			return fiber.StatusForbidden
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		case "BAD_REQUEST":
			return fiber.StatusBadRequest
		}
	}

	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request error", "error", err)
	}
	return models.RespondWithError(c, status, err)
}

// viewerID returns the authenticated user's ID, or 0 for anonymous requests.
func viewerID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
