package server

import (
	"context"
	"time"

	"wisdomwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetWisdom handles GET /wisdom
// @Summary Fetch one wisdom entry at random
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Wisdom
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /wisdom [get]
func (s *Server) GetWisdom(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	entry, err := s.wisdomRepo.Random(ctx)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	if entry == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Wisdom", "any"))
	}

	return c.JSON(entry)
}
