package model

import (
	"time"
)

// Account represents the database model for player accounts
type Account struct {
	ID        uint64    `gorm:"primaryKey"`
	Balance   int64     `gorm:"not null"` // Balance in cents
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	BetCount  uint64    `gorm:"default:0"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
