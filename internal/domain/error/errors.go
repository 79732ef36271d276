package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds   = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidAccountID    = 4003
	CodeRoundNotOpen        = 4005
	CodeRoundMismatch       = 4006
	CodeAlreadyProcessed    = 4007
	CodeInvalidSelection    = 4008
	CodeAccountNotFound     = 4040
	CodeTransactionNotFound = 4041
	CodeRoundNotFound       = 4042
	CodeAccountLocked       = 4230

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInsufficientFunds is returned when an account cannot cover a debit
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned when a stake or payment amount is malformed or non-positive
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAccountID is returned when the account ID is not a positive integer
	ErrInvalidAccountID = errors.New("account ID must be positive")

	// ErrNegativeAmount is returned when an amount string carries a sign
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrAmountOverflow is returned when the amount is too large to represent in cents
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidSelection is returned when a bet selection is not valid for the game variant
	ErrInvalidSelection = errors.New("invalid bet selection")

	// ErrRoundNotOpen is returned when a live bet targets a round that is not accepting bets
	ErrRoundNotOpen = errors.New("round is not open for betting")

	// ErrRoundMismatch is returned when the bettor-presented round ID is not the open round
	ErrRoundMismatch = errors.New("round ID does not match the open round")

	// ErrRoundNotFound is returned when no round exists for a query
	ErrRoundNotFound = errors.New("round not found")

	// ErrRoundAlreadyOpen is returned when an operator starts a round while one is still open
	ErrRoundAlreadyOpen = errors.New("a round is already open")

	// ErrAlreadyProcessed is returned when a payment transaction has left the pending state
	ErrAlreadyProcessed = errors.New("transaction already processed")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned when the requested payment transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrAccountLocked is returned when an account row is held by another operation
	ErrAccountLocked = errors.New("account is locked by another operation")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDuplicateAccount is returned when creating an account that already exists
	ErrDuplicateAccount = errors.New("account already exists")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidAccountID):
		return CodeInvalidAccountID
	case errors.Is(err, ErrRoundNotOpen), errors.Is(err, ErrRoundAlreadyOpen):
		return CodeRoundNotOpen
	case errors.Is(err, ErrRoundMismatch):
		return CodeRoundMismatch
	case errors.Is(err, ErrAlreadyProcessed):
		return CodeAlreadyProcessed
	case errors.Is(err, ErrInvalidSelection):
		return CodeInvalidSelection
	case errors.Is(err, ErrAmountOverflow):
		return CodeInvalidAmount
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrRoundNotFound):
		return CodeRoundNotFound
	case errors.Is(err, ErrAccountLocked):
		return CodeAccountLocked
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information for insufficient funds
type InsufficientFundsError struct {
	AccountID   uint64
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for account %d: required %s, available %s",
		e.AccountID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_funds",
		"account_id":      e.AccountID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(accountID uint64, amount, currentBalance string) error {
	return &InsufficientFundsError{
		AccountID:   accountID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// SettlementError represents a failure while settling bets for a closed round
type SettlementError struct {
	RoundID string
	Variant string
	Err     error
}

// Error implements the error interface for SettlementError
func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement failed for round %s (%s): %v", e.RoundID, e.Variant, e.Err)
}

// Unwrap returns the underlying error
func (e *SettlementError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *SettlementError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "settlement_error",
		"round_id":   e.RoundID,
		"variant":    e.Variant,
		"error":      e.Err.Error(),
	}
}

// BetError represents an error while placing or resolving a bet
type BetError struct {
	AccountID uint64
	Variant   string
	Stake     string
	Reason    string
	Err       error
}

// Error implements the error interface for BetError
func (e *BetError) Error() string {
	return fmt.Sprintf("bet error for account %d (variant: %s, stake: %s): %s - %v",
		e.AccountID, e.Variant, e.Stake, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *BetError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *BetError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "bet_error",
		"account_id": e.AccountID,
		"variant":    e.Variant,
		"stake":      e.Stake,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewBetError creates a detailed bet error
func NewBetError(accountID uint64, variant, stake, reason string, err error) error {
	return &BetError{
		AccountID: accountID,
		Variant:   variant,
		Stake:     stake,
		Reason:    reason,
		Err:       err,
	}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsAccountNotFoundError checks if the error is an account not found error
func IsAccountNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrRoundNotFound)
}

// IsAlreadyProcessedError checks if the error is an already processed error
func IsAlreadyProcessedError(err error) bool {
	return errors.Is(err, ErrAlreadyProcessed)
}

// IsRoundConflictError checks if the error is any round state conflict
func IsRoundConflictError(err error) bool {
	return errors.Is(err, ErrRoundNotOpen) ||
		errors.Is(err, ErrRoundMismatch) ||
		errors.Is(err, ErrRoundAlreadyOpen)
}

// IsAccountLockedError checks if the error is related to a locked account
func IsAccountLockedError(err error) bool {
	return errors.Is(err, ErrAccountLocked)
}
