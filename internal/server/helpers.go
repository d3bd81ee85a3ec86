package server

import (
	"errors"

	"snapfeed/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError maps an application error onto its HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			status = fiber.StatusBadRequest
		case "UNAUTHORIZED":
			status = fiber.StatusUnauthorized
		case "FORBIDDEN":
			status = fiber.StatusForbidden
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "STORAGE_ERROR":
			status = fiber.StatusInternalServerError
		}
	}

	return models.RespondWithError(c, status, err)
}

// currentUserID reads the authenticated user id set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
