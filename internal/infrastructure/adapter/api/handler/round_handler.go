package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	domainerr "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	liveUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/live"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/api/dto"
)

// RoundHandler serves round snapshots for the live games
type RoundHandler struct {
	liveService *liveUseCase.Service
	logger      coreport.Logger
}

// NewRoundHandler creates a new round handler instance
func NewRoundHandler(liveService *liveUseCase.Service, logger coreport.Logger) *RoundHandler {
	return &RoundHandler{
		liveService: liveService,
		logger:      logger,
	}
}

// CurrentRound handles GET /round/current?variant=
func (h *RoundHandler) CurrentRound(c *gin.Context) {
	variant := entity.GameVariant(c.Query("variant"))
	if variant != entity.VariantSpinWin && variant != entity.VariantFourColor {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "variant must be spinwin or fourcolor",
		})
		return
	}

	view, err := h.liveService.CurrentRound(c.Request.Context(), variant)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
