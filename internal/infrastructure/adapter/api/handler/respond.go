package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/luckyrupee/wager-engine/internal/domain/error"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/api/dto"
)

// httpStatusFor maps domain errors to HTTP statuses
func httpStatusFor(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsAlreadyProcessedError(err),
		domainerr.IsRoundConflictError(err):
		return http.StatusConflict
	case domainerr.IsAccountLockedError(err):
		return http.StatusLocked
	case domainerr.IsInsufficientFundsError(err),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrNegativeAmount),
		errors.Is(err, domainerr.ErrAmountOverflow),
		errors.Is(err, domainerr.ErrInvalidAccountID),
		errors.Is(err, domainerr.ErrInvalidSelection),
		errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error body for a domain error
func respondError(c *gin.Context, err error) {
	status := httpStatusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// parseAccountID extracts and validates the accountId path parameter
func parseAccountID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("accountId"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAccountID),
			Message: "Invalid account ID format",
		})
		return 0, false
	}
	return id, true
}
