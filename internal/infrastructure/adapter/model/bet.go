package model

import (
	"time"
)

// Bet represents the database model for bets. RoundID is indexed because
// live settlement aggregates bets by round across all accounts.
type Bet struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	BetID          string    `gorm:"uniqueIndex;not null;size:64"`
	AccountID      uint64    `gorm:"not null;index"`
	Variant        string    `gorm:"not null;size:32"`
	SelectionType  string    `gorm:"size:32"`
	SelectionValue string    `gorm:"size:32"`
	StakeCents     int64     `gorm:"not null"`
	PayoutCents    int64     `gorm:"not null;default:0"`
	Status         string    `gorm:"not null;size:16;index"`
	RoundID        string    `gorm:"index;size:64"`
	CreatedAt      time.Time `gorm:"not null"`
	ResolvedAt     *time.Time

	Account Account `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName specifies the table name for Bet
func (Bet) TableName() string {
	return "bets"
}
