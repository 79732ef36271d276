package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	domainerr "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	paymentUseCase "github.com/luckyrupee/wager-engine/internal/domain/usecase/payment"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/api/dto"
)

// PaymentHandler handles deposit/withdrawal HTTP requests
type PaymentHandler struct {
	paymentService *paymentUseCase.UseCase
	logger         coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(paymentService *paymentUseCase.UseCase, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// RequestDeposit handles POST /account/:accountId/payment/deposit
func (h *PaymentHandler) RequestDeposit(c *gin.Context) {
	h.request(c, entity.PaymentDeposit)
}

// RequestWithdrawal handles POST /account/:accountId/payment/withdrawal
func (h *PaymentHandler) RequestWithdrawal(c *gin.Context) {
	h.request(c, entity.PaymentWithdrawal)
}

func (h *PaymentHandler) request(c *gin.Context, kind entity.PaymentKind) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	var txID string
	var err error
	if kind == entity.PaymentDeposit {
		txID, err = h.paymentService.RequestDeposit(c.Request.Context(), accountID, req.Amount, req.Reference)
	} else {
		txID, err = h.paymentService.RequestWithdrawal(c.Request.Context(), accountID, req.Amount, req.Reference)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentRequestResponse{
		TransactionID: txID,
		Status:        string(entity.PaymentPending),
	})
}

// ListPending handles GET /admin/payments/pending
func (h *PaymentHandler) ListPending(c *gin.Context) {
	txs, err := h.paymentService.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.PaymentResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, paymentToResponse(tx))
	}

	c.JSON(http.StatusOK, dto.PendingPaymentsResponse{Transactions: out})
}

// Resolve handles POST /admin/payments/:transactionId/resolve
func (h *PaymentHandler) Resolve(c *gin.Context) {
	txID := c.Param("transactionId")
	if txID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Missing transaction ID",
		})
		return
	}

	var req dto.PaymentResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	tx, err := h.paymentService.Resolve(c.Request.Context(), txID, req.Action == "approve")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, paymentToResponse(tx))
}

func paymentToResponse(tx *entity.PaymentTransaction) dto.PaymentResponse {
	return dto.PaymentResponse{
		TransactionID: tx.TxID,
		AccountID:     tx.AccountID,
		Kind:          string(tx.Kind),
		Amount:        tx.Amount(),
		Status:        string(tx.Status),
		Reference:     tx.Reference,
		CreatedAt:     tx.CreatedAt,
		ProcessedAt:   tx.ProcessedAt,
	}
}
