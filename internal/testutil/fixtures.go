package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"financehub/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCard creates a card with the given limit and nothing spent.
func CreateTestCard(t *testing.T, db *gorm.DB, limit decimal.Decimal) *models.Card {
	t.Helper()

	card := &models.Card{
		Name:           fmt.Sprintf("Test Card %d", nextID()),
		Limit:          limit,
		LimitUsed:      decimal.Zero,
		AvailableLimit: limit,
		Brand:          "visa",
		Color:          "#4287f5",
		ClosingDay:     5,
		DueDay:         15,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreateTestTransaction creates a cash transaction of the given type and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, txType models.TransactionType, amount decimal.Decimal) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, txType, amount, time.Now())
}

// CreateTestTransactionOn creates a cash transaction dated at the given time.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, txType models.TransactionType, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Type:          txType,
		Description:   fmt.Sprintf("Test Transaction %d", nextID()),
		Category:      "Outros",
		Amount:        amount,
		Date:          date,
		PaymentMethod: models.PaymentMethodCash,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestCategorizedExpense creates an expense in the given category.
func CreateTestCategorizedExpense(t *testing.T, db *gorm.DB, category string, amount decimal.Decimal) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Type:          models.TransactionTypeExpense,
		Description:   fmt.Sprintf("Test Expense %d", nextID()),
		Category:      category,
		Amount:        amount,
		Date:          time.Now(),
		PaymentMethod: models.PaymentMethodCash,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return tx
}

// CreateTestCreditExpense creates an expense paid by credit card. Note that
// creating the row directly does not touch the card's used limit; use the
// transaction service when the reconciliation side effect matters.
func CreateTestCreditExpense(t *testing.T, db *gorm.DB, cardID string, amount decimal.Decimal) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Type:          models.TransactionTypeExpense,
		Description:   fmt.Sprintf("Test Credit Expense %d", nextID()),
		Category:      "Compras",
		Amount:        amount,
		Date:          time.Now(),
		PaymentMethod: models.PaymentMethodCredit,
		CardID:        &cardID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test credit expense: %v", err)
	}
	return tx
}

// CreateTestSavingsGoal creates a savings goal with the given target.
func CreateTestSavingsGoal(t *testing.T, db *gorm.DB, target decimal.Decimal) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		Type:    models.GoalTypeSavings,
		Name:    fmt.Sprintf("Test Goal %d", nextID()),
		Target:  target,
		Current: decimal.Zero,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test savings goal: %v", err)
	}
	return goal
}

// CreateTestBudgetGoal creates a monthly budget for the given category.
func CreateTestBudgetGoal(t *testing.T, db *gorm.DB, category string, target decimal.Decimal) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		Type:     models.GoalTypeBudget,
		Name:     fmt.Sprintf("Test Budget %d", nextID()),
		Target:   target,
		Current:  decimal.Zero,
		Category: category,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test budget goal: %v", err)
	}
	return goal
}

// CreateTestInvestment creates an investment position.
func CreateTestInvestment(t *testing.T, db *gorm.DB, initial, current decimal.Decimal) *models.Investment {
	t.Helper()

	inv := &models.Investment{
		Name:            fmt.Sprintf("Test Investment %d", nextID()),
		Type:            "stocks",
		InitialAmount:   initial,
		CurrentAmount:   current,
		AcquisitionDate: time.Now(),
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}

// CreateTestReminder creates a reminder due at the given date.
func CreateTestReminder(t *testing.T, db *gorm.DB, description string, dueDate time.Time) *models.Reminder {
	t.Helper()

	reminder := &models.Reminder{
		Description: description,
		Amount:      decimal.NewFromInt(100),
		DueDate:     dueDate,
		Category:    "Contas",
	}
	if err := db.Create(reminder).Error; err != nil {
		t.Fatalf("failed to create test reminder: %v", err)
	}
	return reminder
}

// CreateTestNotification creates a notification with the given message.
func CreateTestNotification(t *testing.T, db *gorm.DB, message string) *models.Notification {
	t.Helper()

	n := &models.Notification{
		Title:    fmt.Sprintf("Test Notification %d", nextID()),
		Message:  message,
		Severity: models.SeverityInfo,
	}
	if err := db.Create(n).Error; err != nil {
		t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}
