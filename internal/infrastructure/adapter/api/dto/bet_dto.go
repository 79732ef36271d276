package dto

import "time"

// InstantBetRequest represents the API request for an instant-game bet
type InstantBetRequest struct {
	Variant        string `json:"variant" binding:"required,oneof=colorcash oddeven"`
	Stake          string `json:"stake" binding:"required"`
	SelectionType  string `json:"selectionType" binding:"required"`
	SelectionValue string `json:"selectionValue" binding:"required"`
}

// InstantBetResponse represents a resolved instant bet
type InstantBetResponse struct {
	BetID      string   `json:"betId"`
	Won        bool     `json:"won"`
	Stake      string   `json:"stake"`
	Payout     string   `json:"payout"`
	NewBalance string   `json:"newBalance"`
	Number     int      `json:"number"`
	Colors     []string `json:"colors,omitempty"`
	Size       string   `json:"size,omitempty"`
}

// LiveBetRequest represents the API request for a Spin & Win bet
type LiveBetRequest struct {
	Stake   string `json:"stake" binding:"required"`
	RoundID string `json:"roundId" binding:"required"`
}

// FourColorBetRequest represents the API request for a 4-Color bet
type FourColorBetRequest struct {
	Stake   string `json:"stake" binding:"required"`
	Color   string `json:"color" binding:"required,oneof=red green blue yellow"`
	RoundID string `json:"roundId" binding:"required"`
}

// BetHistoryItem is one entry of an account's bet history
type BetHistoryItem struct {
	BetID          string     `json:"betId"`
	Variant        string     `json:"variant"`
	SelectionType  string     `json:"selectionType,omitempty"`
	SelectionValue string     `json:"selectionValue,omitempty"`
	Stake          string     `json:"stake"`
	Status         string     `json:"status"`
	Payout         string     `json:"payout"`
	RoundID        string     `json:"roundId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	ResolvedAt     *time.Time `json:"resolvedAt,omitempty"`
}

// BetHistoryResponse lists an account's most recent bets
type BetHistoryResponse struct {
	AccountID uint64           `json:"accountId"`
	Bets      []BetHistoryItem `json:"bets"`
}
