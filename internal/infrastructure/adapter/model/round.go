package model

import (
	"time"
)

// Round represents the database model for live rounds
type Round struct {
	ID           string    `gorm:"primaryKey;size:64"`
	Variant      string    `gorm:"not null;size:32;index:idx_rounds_variant_status"`
	Status       string    `gorm:"not null;size:16;index:idx_rounds_variant_status"`
	StartTime    time.Time `gorm:"not null"`
	BetCloseTime time.Time `gorm:"not null"`
	EndTime      time.Time `gorm:"not null"`
	Outcome      *string   `gorm:"size:32"`
	ResolvedAt   *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for Round
func (Round) TableName() string {
	return "rounds"
}
