package services

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"financehub/internal/models"
	"financehub/internal/pagination"
)

// EffectDirection tells the balance reconciler whether a transaction's
// amount is being applied to or reversed from a card's used limit.
type EffectDirection int

const (
	EffectApply EffectDirection = iota
	EffectReverse
)

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type      *models.TransactionType
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
}

// CreateTransactionInput carries the caller-supplied fields for a new transaction.
type CreateTransactionInput struct {
	Type          models.TransactionType
	Description   string
	Category      string
	Amount        decimal.Decimal
	Date          time.Time
	PaymentMethod models.PaymentMethod
	CardID        *string
	Tags          []string
	Notes         string
	Recurring     bool
}

// UpdateTransactionInput carries a partial merge: only non-nil fields change.
type UpdateTransactionInput struct {
	Type          *models.TransactionType
	Description   *string
	Category      *string
	Amount        *decimal.Decimal
	Date          *time.Time
	PaymentMethod *models.PaymentMethod
	CardID        *string
	Tags          []string
	Notes         *string
	Recurring     *bool
}

// TransactionServicer defines the contract for transaction CRUD and the
// orchestration of card-limit reconciliation around it.
type TransactionServicer interface {
	CreateTransaction(input CreateTransactionInput) (*models.Transaction, error)
	UpdateTransaction(id string, input UpdateTransactionInput) (*models.Transaction, error)
	DeleteTransaction(id string) error
	GetTransactionByID(id string) (*models.Transaction, error)
	ListTransactions(filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	AllTransactions(filter TransactionFilter) ([]models.Transaction, error)
}

// UpdateCardInput carries a partial merge for card fields. Limit changes
// recompute AvailableLimit against the current LimitUsed.
type UpdateCardInput struct {
	Name       *string
	Limit      *decimal.Decimal
	Brand      *string
	Color      *string
	ClosingDay *int
	DueDay     *int
}

// CardServicer owns the card collection and the balance reconciler.
type CardServicer interface {
	CreateCard(name string, limit decimal.Decimal, brand, color string, closingDay, dueDay int) (*models.Card, error)
	GetCardByID(id string) (*models.Card, error)
	ListCards() ([]models.Card, error)
	UpdateCard(id string, input UpdateCardInput) (*models.Card, error)
	DeleteCard(id string) error

	// ApplyTransactionEffect adjusts the referenced card's used limit inside
	// the given transaction. A missing card is a no-op.
	ApplyTransactionEffect(tx *gorm.DB, cardID string, amount decimal.Decimal, direction EffectDirection) error
}

// CreateGoalInput carries the caller-supplied fields for a new goal.
type CreateGoalInput struct {
	Type     models.GoalType
	Name     string
	Target   decimal.Decimal
	Current  decimal.Decimal
	Deadline *time.Time
	Category string
}

// UpdateGoalInput carries a partial merge for goal fields.
type UpdateGoalInput struct {
	Name     *string
	Target   *decimal.Decimal
	Deadline *time.Time
	Category *string
}

// BudgetProgress contains computed spending vs target for a budget goal.
type BudgetProgress struct {
	GoalID     string          `json:"goal_id"`
	Category   string          `json:"category"`
	Budgeted   decimal.Decimal `json:"budgeted"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
}

// GoalServicer defines the contract for savings goals and category budgets.
type GoalServicer interface {
	CreateGoal(input CreateGoalInput) (*models.Goal, error)
	GetGoalByID(id string) (*models.Goal, error)
	ListGoals(goalType *models.GoalType) ([]models.Goal, error)
	UpdateGoal(id string, input UpdateGoalInput) (*models.Goal, error)
	DeleteGoal(id string) error
	AddGoalProgress(id string, amount decimal.Decimal) (*models.Goal, error)
	GetBudgetProgress(id string) (*BudgetProgress, error)
}

// UpdateInvestmentInput carries a partial merge for investment fields.
type UpdateInvestmentInput struct {
	Name          *string
	Type          *string
	CurrentAmount *decimal.Decimal
}

// InvestmentServicer defines the contract for investment tracking.
type InvestmentServicer interface {
	CreateInvestment(name, investmentType string, initial, current decimal.Decimal, acquired time.Time) (*models.Investment, error)
	GetInvestmentByID(id string) (*models.Investment, error)
	ListInvestments() ([]models.Investment, error)
	UpdateInvestment(id string, input UpdateInvestmentInput) (*models.Investment, error)
	DeleteInvestment(id string) error
}

// ReminderServicer defines the contract for payment reminders.
type ReminderServicer interface {
	CreateReminder(description string, amount decimal.Decimal, dueDate time.Time, category string) (*models.Reminder, error)
	ListReminders() ([]models.Reminder, error)
	DeleteReminder(id string) error

	// ScanDue raises a warning notification for every reminder due within
	// three days, at most once per reminder per calendar day.
	ScanDue(now time.Time) error
}

// NotificationServicer defines the contract for the notification feed.
type NotificationServicer interface {
	Notify(title, message string, severity models.NotificationSeverity) (*models.Notification, error)
	ListNotifications(unreadOnly bool) ([]models.Notification, error)
	MarkRead(id string) error
	DeleteNotification(id string) error
	ClearNotifications() error

	// HasToday reports whether a notification containing substr was already
	// raised today. Recurring alerts use it to avoid duplicates.
	HasToday(substr string) (bool, error)
}

// UpdateSettingsInput carries a partial merge for the settings singleton.
type UpdateSettingsInput struct {
	Currency      *string
	Language      *string
	Theme         *string
	Notifications *bool
}

// SettingsServicer defines the contract for the settings singleton.
type SettingsServicer interface {
	GetSettings() (*models.Settings, error)
	UpdateSettings(input UpdateSettingsInput) (*models.Settings, error)
}

// ProfileServicer defines the contract for the local profile lock. This is a
// convenience PIN, not access control.
type ProfileServicer interface {
	VerifyPIN(pin string) (bool, error)
	UpdatePIN(pin string) error
	GetProfile() (*models.Profile, error)
}

// Summary is the basic financial summary over a filtered transaction set.
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	Savings decimal.Decimal `json:"savings"`
}

// MonthSummary is one month of the yearly evolution series. Month is the
// calendar month index, 0 through 11.
type MonthSummary struct {
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// AdvancedStats holds derived statistics over the current year.
type AdvancedStats struct {
	AvgMonthlyExpense decimal.Decimal `json:"avg_monthly_expense"`
	MaxExpense        decimal.Decimal `json:"max_expense"`
	TopCategory       string          `json:"top_category"`
	TopCategoryAmount decimal.Decimal `json:"top_category_amount"`
	SavingsRate       decimal.Decimal `json:"savings_rate"`
}

// ForecastPoint is one future month of the linear balance forecast.
type ForecastPoint struct {
	Month            int             `json:"month"`
	PredictedBalance decimal.Decimal `json:"predicted_balance"`
	PredictedIncome  decimal.Decimal `json:"predicted_income"`
	PredictedExpense decimal.Decimal `json:"predicted_expense"`
}

// AnalyticsServicer computes read-only aggregates over the ledger. It never
// mutates state.
type AnalyticsServicer interface {
	FinancialSummary(filter TransactionFilter) (*Summary, error)
	ExpensesByCategory(filter TransactionFilter) (map[string]decimal.Decimal, error)
	MonthlyEvolution(year int) ([]MonthSummary, error)
	AdvancedStatistics() (*AdvancedStats, error)
	Forecast(months int) ([]ForecastPoint, error)
}

// CompoundInterestResult is the outcome of a compound interest projection.
type CompoundInterestResult struct {
	FinalAmount      decimal.Decimal `json:"final_amount"`
	TotalContributed decimal.Decimal `json:"total_contributed"`
	TotalInterest    decimal.Decimal `json:"total_interest"`
}

// InstallmentResult is the outcome of an installment simulation.
type InstallmentResult struct {
	InstallmentValue decimal.Decimal `json:"installment_value"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TotalInterest    decimal.Decimal `json:"total_interest"`
}

// CalculatorServicer exposes the planning tools. All methods are pure.
type CalculatorServicer interface {
	CompoundInterest(principal, monthlyRate decimal.Decimal, months int, monthlyContribution decimal.Decimal) CompoundInterestResult
	SimulateInstallment(total decimal.Decimal, installments int, monthlyRate decimal.Decimal) (*InstallmentResult, error)
	ConvertCurrency(amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// ExportServicer builds and consumes the export/import envelope: one JSON
// object whose top-level keys name each collection. Import is a key-by-key
// wholesale replacement, not a merge.
type ExportServicer interface {
	Export() (map[string]json.RawMessage, error)
	Import(envelope map[string]json.RawMessage) error
	ImportKey(key string, value json.RawMessage) error
	ClearAll() error
}
