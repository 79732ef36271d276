package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	liveUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/live"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/api/dto"
)

// FourColorHandler exposes the operator controls for 4-Color rounds
type FourColorHandler struct {
	liveService *liveUseCase.Service
	logger      coreport.Logger
}

// NewFourColorHandler creates a new 4-Color operator handler
func NewFourColorHandler(liveService *liveUseCase.Service, logger coreport.Logger) *FourColorHandler {
	return &FourColorHandler{
		liveService: liveService,
		logger:      logger,
	}
}

// StartRound handles POST /admin/fourcolor/start
func (h *FourColorHandler) StartRound(c *gin.Context) {
	roundID, err := h.liveService.StartFourColorRound(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StartRoundResponse{RoundID: roundID})
}

// Totals handles GET /admin/fourcolor/totals
func (h *FourColorHandler) Totals(c *gin.Context) {
	roundID, totals, err := h.liveService.FourColorTotals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RoundTotalsResponse{
		RoundID: roundID,
		Totals:  totals,
	})
}

// EndRound handles POST /admin/fourcolor/end
func (h *FourColorHandler) EndRound(c *gin.Context) {
	var req dto.EndRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	summary, err := h.liveService.EndFourColorRound(c.Request.Context(), req.WinningColor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
