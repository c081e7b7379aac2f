package http

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"betanalytix/internal/delivery/http/dto"
	"betanalytix/internal/domain"
	"betanalytix/internal/middleware"
	"betanalytix/internal/service"
)

// BankrollHandler handles bankroll CRUD and per-bankroll analytics requests
type BankrollHandler struct {
	bankrollRepo domain.BankrollRepository
	analytics    *service.AnalyticsService
}

// NewBankrollHandler creates a new BankrollHandler
func NewBankrollHandler(bankrollRepo domain.BankrollRepository, analytics *service.AnalyticsService) *BankrollHandler {
	return &BankrollHandler{
		bankrollRepo: bankrollRepo,
		analytics:    analytics,
	}
}

// List returns all bankrolls of the authenticated user
// GET /api/bankrolls
func (h *BankrollHandler) List(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bankrolls, err := h.bankrollRepo.GetByUserID(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"bankrolls": bankrolls,
		"count":     len(bankrolls),
	})
}

// Get returns one bankroll
// GET /api/bankrolls/:id
func (h *BankrollHandler) Get(c echo.Context) error {
	_, bankroll, err := h.loadOwned(c)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, bankroll)
}

// Create creates a new bankroll
// POST /api/bankrolls
func (h *BankrollHandler) Create(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.CreateBankrollRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	bankroll, err := domain.NewBankroll(userID, req.Name, req.Description, req.InitialCapital, req.Currency)
	if err != nil {
		return DomainErrorResponse(c, err)
	}
	bankroll.IsPublic = req.IsPublic

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.bankrollRepo.Create(ctx, bankroll); err != nil {
		return InternalServerErrorResponse(c, "Failed to create bankroll", err)
	}

	return CreatedResponse(c, bankroll)
}

// Update applies bankroll edits (name, description, flags)
// PUT /api/bankrolls/:id
func (h *BankrollHandler) Update(c echo.Context) error {
	_, bankroll, err := h.loadOwned(c)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	var req dto.UpdateBankrollRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Name != nil {
		if *req.Name == "" {
			return BadRequestResponse(c, "Name cannot be empty")
		}
		bankroll.Name = *req.Name
	}
	if req.Description != nil {
		bankroll.Description = req.Description
	}
	if req.IsActive != nil {
		bankroll.IsActive = *req.IsActive
	}
	if req.IsPublic != nil {
		bankroll.IsPublic = *req.IsPublic
	}
	bankroll.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.bankrollRepo.Update(ctx, bankroll); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, bankroll)
}

// Delete removes a bankroll and, via cascade, all its bets and legs
// DELETE /api/bankrolls/:id
func (h *BankrollHandler) Delete(c echo.Context) error {
	_, bankroll, err := h.loadOwned(c)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.bankrollRepo.Delete(ctx, bankroll.ID); err != nil {
		return DomainErrorResponse(c, err)
	}

	h.analytics.InvalidateStats(ctx, bankroll.ID)

	return SuccessResponse(c, map[string]string{"message": "Bankroll deleted"})
}

// Stats returns the derived statistics of a bankroll
// GET /api/bankrolls/:id/stats
func (h *BankrollHandler) Stats(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	bankrollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid bankroll ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	stats, err := h.analytics.GetBankrollStats(ctx, userID, bankrollID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, stats)
}

// History returns the balance series over the trailing window
// GET /api/bankrolls/:id/history?days=30
func (h *BankrollHandler) History(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	bankrollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid bankroll ID")
	}

	days := 30
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return BadRequestResponse(c, "days must be a positive integer")
		}
		days = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	history, err := h.analytics.GetBalanceHistory(ctx, userID, bankrollID, days)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"history": history,
		"days":    days,
	})
}

// loadOwned fetches the bankroll from the path and verifies ownership.
func (h *BankrollHandler) loadOwned(c echo.Context) (uuid.UUID, *domain.Bankroll, error) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return uuid.Nil, nil, domain.ErrUnauthorized
	}

	bankrollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, nil, &domain.ValidationError{Field: "id", Message: "invalid bankroll ID"}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bankroll, err := h.bankrollRepo.GetByID(ctx, bankrollID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if bankroll.UserID != userID {
		return uuid.Nil, nil, domain.ErrForbidden
	}

	return userID, bankroll, nil
}
