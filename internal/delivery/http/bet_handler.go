package http

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"betanalytix/internal/delivery/http/dto"
	"betanalytix/internal/domain"
	"betanalytix/internal/middleware"
	"betanalytix/internal/service"
	"betanalytix/internal/usecase"
)

// BetHandler handles bet placement, retrieval and settlement requests
type BetHandler struct {
	betting    *usecase.BettingService
	settlement *service.SettlementService
}

// NewBetHandler creates a new BetHandler
func NewBetHandler(betting *usecase.BettingService, settlement *service.SettlementService) *BetHandler {
	return &BetHandler{
		betting:    betting,
		settlement: settlement,
	}
}

// List returns the user's bets, optionally filtered by bankroll
// GET /api/bets?bankroll_id=...
func (h *BetHandler) List(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var bankrollID *uuid.UUID
	if raw := c.QueryParam("bankroll_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return BadRequestResponse(c, "Invalid bankroll ID")
		}
		bankrollID = &parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	bets, err := h.betting.ListBets(ctx, userID, bankrollID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"bets":  bets,
		"count": len(bets),
	})
}

// Get returns one bet with its legs
// GET /api/bets/:id
func (h *BetHandler) Get(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid bet ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bet, err := h.betting.GetBet(ctx, userID, betID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, bet)
}

// Create places a new bet with its legs
// POST /api/bets
func (h *BetHandler) Create(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.CreateBetRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	input, err := betInput(&req)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	bet, err := h.betting.CreateBet(ctx, userID, input)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, bet)
}

// Settle resolves a pending bet to a terminal status
// POST /api/bets/:id/settle
func (h *BetHandler) Settle(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid bet ID")
	}

	var req dto.SettleBetRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	bet, err := h.settlement.Settle(ctx, userID, betID, domain.BetStatus(req.Status), req.ActualReturn)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, bet)
}

// Delete removes a bet and its legs
// DELETE /api/bets/:id
func (h *BetHandler) Delete(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid bet ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.betting.DeleteBet(ctx, userID, betID); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]string{"message": "Bet deleted"})
}

// Sports lists the active sports catalog
// GET /api/sports
func (h *BetHandler) Sports(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sports, err := h.betting.GetSports(ctx)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{"sports": sports})
}

// Bookmakers lists the bookmakers visible to the user
// GET /api/bookmakers
func (h *BetHandler) Bookmakers(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookmakers, err := h.betting.GetBookmakers(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{"bookmakers": bookmakers})
}

func betInput(req *dto.CreateBetRequest) (*usecase.CreateBetInput, error) {
	bankrollID, err := uuid.Parse(req.BankrollID)
	if err != nil {
		return nil, &domain.ValidationError{Field: "bankroll_id", Message: "invalid bankroll ID"}
	}

	input := &usecase.CreateBetInput{
		BankrollID: bankrollID,
		BetType:    domain.BetType(req.BetType),
		Stake:      req.Stake,
		PlacedAt:   req.PlacedAt,
		Notes:      req.Notes,
		Tags:       req.Tags,
	}

	if req.BookmakerID != nil && *req.BookmakerID != "" {
		bookmakerID, err := uuid.Parse(*req.BookmakerID)
		if err != nil {
			return nil, &domain.ValidationError{Field: "bookmaker_id", Message: "invalid bookmaker ID"}
		}
		input.BookmakerID = &bookmakerID
	}

	for i, leg := range req.Legs {
		legInput := usecase.CreateBetLegInput{
			EventName:  leg.EventName,
			EventDate:  leg.EventDate,
			Selection:  leg.Selection,
			Odds:       leg.Odds,
			League:     leg.League,
			MarketType: leg.MarketType,
		}
		if leg.SportID != nil && *leg.SportID != "" {
			sportID, err := uuid.Parse(*leg.SportID)
			if err != nil {
				return nil, &domain.ValidationError{
					Field:   fmt.Sprintf("legs[%d].sport_id", i),
					Message: "invalid sport ID",
				}
			}
			legInput.SportID = &sportID
		}
		input.Legs = append(input.Legs, legInput)
	}

	return input, nil
}
