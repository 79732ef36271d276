package dto

// BalanceResponse represents the API response for an account's balance
type BalanceResponse struct {
	AccountID uint64 `json:"accountId"`
	Balance   string `json:"balance"`
}
