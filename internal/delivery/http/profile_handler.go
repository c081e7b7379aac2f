package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"betanalytix/internal/delivery/http/dto"
	"betanalytix/internal/domain"
	"betanalytix/internal/middleware"
)

// ProfileHandler handles requests about the authenticated user's own profile
type ProfileHandler struct {
	profileRepo domain.ProfileRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileRepo domain.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{
		profileRepo: profileRepo,
	}
}

// GetMe returns current user details
// GET /api/me
func (h *ProfileHandler) GetMe(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profile, err := h.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, profileOutput(profile))
}

// UpdateMe applies profile edits (name, avatar, bio, timezone, visibility)
// PUT /api/me
func (h *ProfileHandler) UpdateMe(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profile, err := h.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	if req.FullName != nil {
		profile.FullName = req.FullName
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Timezone != nil {
		profile.Timezone = *req.Timezone
	}
	if req.IsPublic != nil {
		profile.IsPublic = *req.IsPublic
	}
	profile.UpdatedAt = time.Now()

	if err := h.profileRepo.Update(ctx, profile); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, profileOutput(profile))
}
