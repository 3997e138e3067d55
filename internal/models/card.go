package models

import "github.com/shopspring/decimal"

// Card represents a credit card. LimitUsed and AvailableLimit are derived
// fields maintained by the balance reconciler: after every transaction
// mutation that touches the card, AvailableLimit = Limit - LimitUsed and
// LimitUsed never goes below zero.
type Card struct {
	Base
	Name           string          `gorm:"not null" json:"name"`
	Limit          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"limit"`
	LimitUsed      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"limit_used"`
	AvailableLimit decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"available_limit"`
	Brand          string          `json:"brand,omitempty"`
	Color          string          `json:"color,omitempty"`
	ClosingDay     int             `gorm:"not null" json:"closing_day"`
	DueDay         int             `gorm:"not null" json:"due_day"`
}
