package model

import (
	"time"
)

// PaymentTransaction represents the database model for deposit/withdrawal requests
type PaymentTransaction struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	TxID        string    `gorm:"uniqueIndex;not null;size:64"`
	AccountID   uint64    `gorm:"not null;index"`
	Kind        string    `gorm:"not null;size:16"`
	AmountCents int64     `gorm:"not null"`
	Status      string    `gorm:"not null;size:16;index"`
	Reference   string    `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"not null"`
	ProcessedAt *time.Time

	Account Account `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName specifies the table name for PaymentTransaction
func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
