package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment represents a tracked investment position.
type Investment struct {
	Base
	Name            string          `gorm:"not null" json:"name"`
	Type            string          `gorm:"not null" json:"type"`
	InitialAmount   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"initial_amount"`
	CurrentAmount   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"current_amount"`
	AcquisitionDate time.Time       `gorm:"not null" json:"acquisition_date"`
}
