package server

import (
	"context"
	"errors"

	"wisdomwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps the application error taxonomy onto HTTP status codes,
// keeping handlers free of per-code switch statements.
func statusForError(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusInternalServerError
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR", "DUPLICATE":
			return fiber.StatusBadRequest
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		case "FORBIDDEN":
			return fiber.StatusForbidden
		case "NOT_FOUND":
			return fiber.StatusNotFound
		}
	}
	return fiber.StatusInternalServerError
}
