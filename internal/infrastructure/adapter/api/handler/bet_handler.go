package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	domainerr "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	instantUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/instant"
	liveUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/live"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/api/dto"
)

// BetHandler handles bet placement HTTP requests
type BetHandler struct {
	instantService *instantUseCase.UseCase
	liveService    *liveUseCase.Service
	logger         coreport.Logger
}

// NewBetHandler creates a new bet handler instance
func NewBetHandler(
	instantService *instantUseCase.UseCase,
	liveService *liveUseCase.Service,
	logger coreport.Logger,
) *BetHandler {
	return &BetHandler{
		instantService: instantService,
		liveService:    liveService,
		logger:         logger,
	}
}

// PlaceInstantBet handles POST /account/:accountId/bet/instant
func (h *BetHandler) PlaceInstantBet(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req dto.InstantBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.instantService.PlaceBet(
		c.Request.Context(),
		accountID,
		req.Stake,
		entity.GameVariant(req.Variant),
		entity.SelectionType(req.SelectionType),
		req.SelectionValue,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.InstantBetResponse{
		BetID:      result.BetID,
		Won:        result.Won,
		Stake:      result.Stake,
		Payout:     result.Payout,
		NewBalance: result.NewBalance,
		Number:     result.Number,
		Colors:     result.Colors,
		Size:       result.Size,
	})
}

// PlaceLiveBet handles POST /account/:accountId/bet/live
func (h *BetHandler) PlaceLiveBet(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req dto.LiveBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	ack, err := h.liveService.PlaceSpinBet(c.Request.Context(), accountID, req.Stake, req.RoundID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ack)
}

// PlaceFourColorBet handles POST /account/:accountId/bet/fourcolor
func (h *BetHandler) PlaceFourColorBet(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req dto.FourColorBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	ack, err := h.liveService.PlaceFourColorBet(c.Request.Context(), accountID, req.Stake, req.Color, req.RoundID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ack)
}
