package entity

import (
	"fmt"
	"time"

	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
)

// PaymentKind distinguishes deposits from withdrawals
type PaymentKind string

// Payment kinds
const (
	PaymentDeposit    PaymentKind = "deposit"
	PaymentWithdrawal PaymentKind = "withdrawal"
)

// PaymentStatus defines the lifecycle state of a payment transaction
type PaymentStatus string

// Payment statuses. A transaction moves pending -> approved or rejected
// exactly once; approval is the only path that mutates the account balance.
const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// PaymentTransaction represents a deposit or withdrawal request awaiting an
// operator decision
type PaymentTransaction struct {
	ID          uint64 // Database identifier
	TxID        string // External UUID
	AccountID   uint64
	Kind        PaymentKind
	AmountCents int64
	Status      PaymentStatus
	Reference   string // Bank / UPI reference supplied by the player
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// NewPaymentTransaction creates a pending payment request
func NewPaymentTransaction(
	txID string,
	accountID uint64,
	kind PaymentKind,
	amount string,
	reference string,
	timeProvider coreport.TimeProvider,
) (*PaymentTransaction, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if kind != PaymentDeposit && kind != PaymentWithdrawal {
		return nil, fmt.Errorf("%w: unknown payment kind %s", errs.ErrInvalidRequest, kind)
	}

	cents, err := ParsePositiveAmount(amount)
	if err != nil {
		return nil, err
	}

	return &PaymentTransaction{
		TxID:        txID,
		AccountID:   accountID,
		Kind:        kind,
		AmountCents: cents,
		Status:      PaymentPending,
		Reference:   reference,
		CreatedAt:   timeProvider.Now(),
	}, nil
}

// IsPending reports whether the transaction still awaits a decision
func (t *PaymentTransaction) IsPending() bool {
	return t.Status == PaymentPending
}

// MarkApproved records the approval decision
func (t *PaymentTransaction) MarkApproved(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	t.ProcessedAt = &now
	t.Status = PaymentApproved
}

// MarkRejected records the rejection decision
func (t *PaymentTransaction) MarkRejected(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	t.ProcessedAt = &now
	t.Status = PaymentRejected
}

// Amount returns the amount as a decimal string
func (t *PaymentTransaction) Amount() string {
	return FormatCents(t.AmountCents)
}
