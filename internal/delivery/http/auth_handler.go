package http

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"betanalytix/internal/delivery/http/dto"
	"betanalytix/internal/domain"
	"betanalytix/internal/middleware"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	profileRepo domain.ProfileRepository
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(profileRepo domain.ProfileRepository) *AuthHandler {
	return &AuthHandler{
		profileRepo: profileRepo,
	}
}

// Register handles user registration
// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return BadRequestResponse(c, "A valid email is required")
	}
	if len(req.Username) < 3 {
		return BadRequestResponse(c, "Username must be at least 3 characters")
	}
	if len(req.Password) < 6 {
		return BadRequestResponse(c, "Password must be at least 6 characters")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.profileRepo.GetByEmail(ctx, req.Email); err == nil {
		return ConflictResponse(c, "Email is already registered")
	}
	if _, err := h.profileRepo.GetByUsername(ctx, req.Username); err == nil {
		return ConflictResponse(c, "Username is already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to hash password", err)
	}

	now := time.Now()
	profile := &domain.Profile{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		Timezone:     "UTC",
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.FullName != "" {
		profile.FullName = &req.FullName
	}

	if err := h.profileRepo.Create(ctx, profile); err != nil {
		return InternalServerErrorResponse(c, "Failed to create profile", err)
	}

	return CreatedResponse(c, profileOutput(profile))
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Email == "" || req.Password == "" {
		return BadRequestResponse(c, "Email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profile, err := h.profileRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	token, err := middleware.GenerateJWT(profile.ID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to generate token", err)
	}

	// Set HTTP-only cookie
	cookie := &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 hours
	}
	c.SetCookie(cookie)

	return SuccessResponse(c, dto.LoginResponse{
		Token: token,
		User:  profileOutput(profile),
	})
}

// Logout handles user logout
// POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	// Clear the cookie
	cookie := &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1, // Delete cookie
	}
	c.SetCookie(cookie)

	return SuccessResponse(c, map[string]string{"message": "Logged out"})
}

func profileOutput(profile *domain.Profile) *dto.ProfileOutput {
	return &dto.ProfileOutput{
		ID:        profile.ID.String(),
		Email:     profile.Email,
		Username:  profile.Username,
		FullName:  profile.FullName,
		AvatarURL: profile.AvatarURL,
		Bio:       profile.Bio,
		Timezone:  profile.Timezone,
		IsPublic:  profile.IsPublic,
	}
}
