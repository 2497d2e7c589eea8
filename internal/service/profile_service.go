// Package service contains business logic that sits between handlers and repositories.
package service

import (
	"context"

	"wisdomwell/internal/models"
	"wisdomwell/internal/repository"
	"wisdomwell/internal/validation"
)

// ProfileService handles reads and updates of the authenticated user's profile.
type ProfileService struct {
	userRepo repository.UserRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// GetProfile returns the profile for the given subject id.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateBio validates and persists a new bio for the subject, returning the
// updated record.
func (s *ProfileService) UpdateBio(ctx context.Context, userID uint, bio string) (*models.User, error) {
	if err := validation.ValidateBio(bio); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.userRepo.UpdateBio(ctx, userID, bio)
}
