package dto

import "time"

// PaymentRequest represents a deposit or withdrawal request body
type PaymentRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Reference string `json:"reference"`
}

// PaymentRequestResponse acknowledges a newly created payment transaction
type PaymentRequestResponse struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

// PaymentResolveRequest carries the operator's decision on a pending transaction
type PaymentResolveRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// PaymentResponse represents a payment transaction in API responses
type PaymentResponse struct {
	TransactionID string     `json:"transactionId"`
	AccountID     uint64     `json:"accountId"`
	Kind          string     `json:"kind"`
	Amount        string     `json:"amount"`
	Status        string     `json:"status"`
	Reference     string     `json:"reference,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	ProcessedAt   *time.Time `json:"processedAt,omitempty"`
}

// PendingPaymentsResponse lists transactions awaiting a decision
type PendingPaymentsResponse struct {
	Transactions []PaymentResponse `json:"transactions"`
}
