package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reminder represents an upcoming payment the user wants to be warned about.
type Reminder struct {
	Base
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	DueDate     time.Time       `gorm:"not null;index" json:"due_date"`
	Category    string          `json:"category,omitempty"`
}
