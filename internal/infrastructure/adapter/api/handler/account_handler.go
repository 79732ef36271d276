package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	accountUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/account"
	instantUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/instant"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/api/dto"
)

const defaultHistoryLimit = 50

// AccountHandler handles account-facing HTTP requests
type AccountHandler struct {
	accountService *accountUseCase.UseCase
	instantService *instantUseCase.UseCase
	logger         coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(
	accountService *accountUseCase.UseCase,
	instantService *instantUseCase.UseCase,
	logger coreport.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		instantService: instantService,
		logger:         logger,
	}
}

// GetBalance handles GET /account/:accountId/balance
func (h *AccountHandler) GetBalance(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	balance, err := h.accountService.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		h.logger.Error("Failed to get balance", map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		Balance:   balance,
	})
}

// GetBets handles GET /account/:accountId/bets
func (h *AccountHandler) GetBets(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	bets, err := h.instantService.History(c.Request.Context(), accountID, defaultHistoryLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.BetHistoryItem, 0, len(bets))
	for _, b := range bets {
		items = append(items, betToHistoryItem(b))
	}

	c.JSON(http.StatusOK, dto.BetHistoryResponse{
		AccountID: accountID,
		Bets:      items,
	})
}

func betToHistoryItem(b *entity.Bet) dto.BetHistoryItem {
	return dto.BetHistoryItem{
		BetID:          b.BetID,
		Variant:        string(b.Variant),
		SelectionType:  string(b.SelectionType),
		SelectionValue: b.SelectionValue,
		Stake:          b.Stake(),
		Status:         string(b.Status),
		Payout:         b.Payout(),
		RoundID:        b.RoundID,
		CreatedAt:      b.CreatedAt,
		ResolvedAt:     b.ResolvedAt,
	}
}
