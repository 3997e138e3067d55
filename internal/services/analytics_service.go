package services

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "financehub/internal/errors"
	"financehub/internal/models"
)

var (
	twelve  = decimal.NewFromInt(12)
	three   = decimal.NewFromInt(3)
	hundred = decimal.NewFromInt(100)
)

// analyticsService computes read-only aggregates over the ledger. All sums
// are decimal; nothing is rounded before presentation.
type analyticsService struct {
	transactions TransactionServicer
	now          func() time.Time
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(transactions TransactionServicer) AnalyticsServicer {
	return &analyticsService{transactions: transactions, now: time.Now}
}

// FinancialSummary sums income and expense over the filtered set. Balance is
// income minus expense; savings is the balance floored at zero.
func (s *analyticsService) FinancialSummary(filter TransactionFilter) (*Summary, error) {
	transactions, err := s.transactions.AllTransactions(filter)
	if err != nil {
		return nil, err
	}
	return summarize(transactions), nil
}

// ExpensesByCategory returns expense totals keyed by category.
func (s *analyticsService) ExpensesByCategory(filter TransactionFilter) (map[string]decimal.Decimal, error) {
	expense := models.TransactionTypeExpense
	filter.Type = &expense
	transactions, err := s.transactions.AllTransactions(filter)
	if err != nil {
		return nil, err
	}
	totals, _ := groupExpenses(transactions)
	return totals, nil
}

// MonthlyEvolution computes a financial summary for each of the twelve
// calendar months of the given year, in order.
func (s *analyticsService) MonthlyEvolution(year int) ([]MonthSummary, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 999999999, time.UTC)
	transactions, err := s.transactions.AllTransactions(TransactionFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}
	return monthlySeries(transactions), nil
}

// AdvancedStatistics derives average monthly expense, the single largest
// expense, the top expense category, and the savings rate for the current year.
func (s *analyticsService) AdvancedStatistics() (*AdvancedStats, error) {
	months, err := s.MonthlyEvolution(s.now().Year())
	if err != nil {
		return nil, err
	}
	totalExpense := decimal.Zero
	for _, m := range months {
		totalExpense = totalExpense.Add(m.Expense)
	}
	avgMonthly := totalExpense.Div(twelve)

	transactions, err := s.transactions.AllTransactions(TransactionFilter{})
	if err != nil {
		return nil, err
	}

	maxExpense := decimal.Zero
	var expenses []models.Transaction
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		expenses = append(expenses, t)
		if t.Amount.GreaterThan(maxExpense) {
			maxExpense = t.Amount
		}
	}

	// Top category: strictly-greater comparison keeps the first encountered
	// category on ties.
	totals, order := groupExpenses(expenses)
	topCategory := "-"
	topAmount := decimal.Zero
	for _, category := range order {
		if totals[category].GreaterThan(topAmount) {
			topCategory = category
			topAmount = totals[category]
		}
	}

	summary := summarize(transactions)
	savingsRate := decimal.Zero
	if summary.Income.IsPositive() {
		savingsRate = summary.Savings.Div(summary.Income).Mul(hundred)
	}

	return &AdvancedStats{
		AvgMonthlyExpense: avgMonthly,
		MaxExpense:        maxExpense,
		TopCategory:       topCategory,
		TopCategoryAmount: topAmount,
		SavingsRate:       savingsRate,
	}, nil
}

// Forecast extrapolates the balance linearly from the averages of the last
// three months of the current year's evolution series. Predicted income and
// expense stay constant at those averages; the balance grows by the average
// monthly balance per future month, starting from the present total balance.
func (s *analyticsService) Forecast(months int) ([]ForecastPoint, error) {
	if months < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "forecast horizon must be at least one month")
	}

	evolution, err := s.MonthlyEvolution(s.now().Year())
	if err != nil {
		return nil, err
	}
	recent := evolution[len(evolution)-3:]

	avgIncome := decimal.Zero
	avgExpense := decimal.Zero
	for _, m := range recent {
		avgIncome = avgIncome.Add(m.Income)
		avgExpense = avgExpense.Add(m.Expense)
	}
	avgIncome = avgIncome.Div(three)
	avgExpense = avgExpense.Div(three)
	avgBalance := avgIncome.Sub(avgExpense)

	current, err := s.FinancialSummary(TransactionFilter{})
	if err != nil {
		return nil, err
	}

	forecast := make([]ForecastPoint, 0, months)
	for i := 1; i <= months; i++ {
		forecast = append(forecast, ForecastPoint{
			Month:            i,
			PredictedBalance: current.Balance.Add(avgBalance.Mul(decimal.NewFromInt(int64(i)))),
			PredictedIncome:  avgIncome,
			PredictedExpense: avgExpense,
		})
	}
	return forecast, nil
}

// summarize folds a transaction list into a Summary.
func summarize(transactions []models.Transaction) *Summary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			income = income.Add(t.Amount)
		case models.TransactionTypeExpense:
			expense = expense.Add(t.Amount)
		}
	}
	balance := income.Sub(expense)
	savings := balance
	if savings.IsNegative() {
		savings = decimal.Zero
	}
	return &Summary{Income: income, Expense: expense, Balance: balance, Savings: savings}
}

// groupExpenses sums expense amounts per category and records the order in
// which categories were first encountered.
func groupExpenses(transactions []models.Transaction) (map[string]decimal.Decimal, []string) {
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}
	return totals, order
}

// monthlySeries buckets transactions into the twelve calendar months.
func monthlySeries(transactions []models.Transaction) []MonthSummary {
	buckets := make([][]models.Transaction, 12)
	for _, t := range transactions {
		m := int(t.Date.UTC().Month()) - 1
		buckets[m] = append(buckets[m], t)
	}
	series := make([]MonthSummary, 12)
	for m := 0; m < 12; m++ {
		summary := summarize(buckets[m])
		series[m] = MonthSummary{
			Month:   m,
			Income:  summary.Income,
			Expense: summary.Expense,
			Balance: summary.Balance,
		}
	}
	return series
}
