package server

import (
	"context"
	"time"

	"wisdomwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

type updateProfileRequest struct {
	Bio string `json:"bio"`
}

// GetMyProfile handles GET /profile
// @Summary Get the authenticated user's profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{username=string,bio=string}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /profile [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	userID := c.Locals("userID").(uint)

	user, err := s.profileService.GetProfile(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	// Only the subject's own record, and never the password hash.
	return c.JSON(fiber.Map{
		"username": user.Username,
		"bio":      user.Bio,
	})
}

// UpdateMyProfile handles PUT /profile
// @Summary Update the authenticated user's bio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{bio=string} true "Profile update"
// @Success 200 {object} object{username=string,bio=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /profile [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	userID := c.Locals("userID").(uint)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.profileService.UpdateBio(ctx, userID, req.Bio)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"username": user.Username,
		"bio":      user.Bio,
	})
}
