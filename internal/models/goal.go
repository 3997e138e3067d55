package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalType distinguishes savings goals from category budgets.
type GoalType string

const (
	GoalTypeSavings GoalType = "savings"
	GoalTypeBudget  GoalType = "budget"
)

// Goal represents either a savings goal or a monthly category budget.
// Current is only meaningful for savings goals and is adjusted exclusively
// through explicit progress updates, never as a transaction side effect.
// Budget spend is computed from transactions on demand and not stored.
type Goal struct {
	Base
	Type     GoalType        `gorm:"not null;index" json:"type"`
	Name     string          `gorm:"not null" json:"name"`
	Target   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"target"`
	Current  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"current"`
	Deadline *time.Time      `json:"deadline,omitempty"`
	Category string          `gorm:"index" json:"category,omitempty"`
}
