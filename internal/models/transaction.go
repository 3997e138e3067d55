package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// PaymentMethod represents how a transaction was paid.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodDebit    PaymentMethod = "debit"
	PaymentMethodCredit   PaymentMethod = "credit"
	PaymentMethodPix      PaymentMethod = "pix"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// Transaction represents a single ledger entry. Amount is always a positive
// magnitude; the sign is implied by Type.
type Transaction struct {
	Base
	Type          TransactionType `gorm:"not null;index" json:"type"`
	Description   string          `gorm:"not null" json:"description"`
	Category      string          `gorm:"not null;index" json:"category"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Date          time.Time       `gorm:"not null;index" json:"date"`
	PaymentMethod PaymentMethod   `gorm:"not null" json:"payment_method"`
	CardID        *string         `gorm:"type:uuid;index" json:"card_id,omitempty"`
	Tags          []string        `gorm:"serializer:json" json:"tags,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Recurring     bool            `gorm:"default:false" json:"recurring"`

	// Relationships
	Card *Card `gorm:"foreignKey:CardID" json:"card,omitempty"`
}

// IsCreditExpense reports whether this transaction consumes credit card limit.
func (t *Transaction) IsCreditExpense() bool {
	return t.Type == TransactionTypeExpense &&
		t.PaymentMethod == PaymentMethodCredit &&
		t.CardID != nil && *t.CardID != ""
}
