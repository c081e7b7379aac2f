package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"betanalytix/internal/middleware"
	"betanalytix/internal/service"
)

// SocialHandler handles public tipster profiles and the follow graph
type SocialHandler struct {
	social *service.SocialService
}

// NewSocialHandler creates a new SocialHandler
func NewSocialHandler(social *service.SocialService) *SocialHandler {
	return &SocialHandler{social: social}
}

// GetTipster returns the public profile for a username
// GET /api/tipsters/:username
func (h *SocialHandler) GetTipster(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return BadRequestResponse(c, "Username is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	profile, err := h.social.GetPublicProfile(ctx, username)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, profile)
}

// GetTipsterBankrolls returns the public bankrolls for a username
// GET /api/tipsters/:username/bankrolls
func (h *SocialHandler) GetTipsterBankrolls(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return BadRequestResponse(c, "Username is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	bankrolls, err := h.social.GetPublicBankrolls(ctx, username)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"bankrolls": bankrolls,
		"count":     len(bankrolls),
	})
}

// Follow creates a follow edge to the target user
// POST /api/follows/:user_id
func (h *SocialHandler) Follow(c echo.Context) error {
	followerID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.social.Follow(ctx, followerID, targetID); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]string{"message": "Following"})
}

// Unfollow removes the follow edge to the target user
// DELETE /api/follows/:user_id
func (h *SocialHandler) Unfollow(c echo.Context) error {
	followerID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.social.Unfollow(ctx, followerID, targetID); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]string{"message": "Unfollowed"})
}

// FollowStatus reports whether the caller follows the target user
// GET /api/follows/:user_id
func (h *SocialHandler) FollowStatus(c echo.Context) error {
	viewerID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	following, err := h.social.IsFollowing(ctx, viewerID, targetID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]bool{"following": following})
}
