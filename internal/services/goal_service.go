package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "financehub/internal/errors"
	"financehub/internal/logger"
	"financehub/internal/models"
)

// goalService handles savings goals and category budgets.
type goalService struct {
	db            *gorm.DB
	notifications NotificationServicer
	now           func() time.Time
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, notifications NotificationServicer) GoalServicer {
	return &goalService{db: db, notifications: notifications, now: time.Now}
}

// CreateGoal creates a savings goal or a category budget. Budgets must name
// the category they cap; their spend is computed, never stored.
func (s *goalService) CreateGoal(input CreateGoalInput) (*models.Goal, error) {
	if input.Type != models.GoalTypeSavings && input.Type != models.GoalTypeBudget {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal type must be savings or budget")
	}
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if !input.Target.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if input.Type == models.GoalTypeBudget && input.Category == "" {
		return nil, apperrors.ErrCategoryMissing
	}
	if input.Current.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current amount cannot be negative")
	}

	goal := &models.Goal{
		Type:     input.Type,
		Name:     input.Name,
		Target:   input.Target,
		Current:  input.Current,
		Deadline: input.Deadline,
		Category: input.Category,
	}
	if goal.Type == models.GoalTypeBudget {
		goal.Current = decimal.Zero
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return goal, nil
}

// GetGoalByID retrieves a goal by ID.
func (s *goalService) GetGoalByID(id string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.First(&goal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &goal, nil
}

// ListGoals returns goals, optionally restricted to one type.
func (s *goalService) ListGoals(goalType *models.GoalType) ([]models.Goal, error) {
	q := s.db.Order("created_at DESC")
	if goalType != nil {
		q = q.Where("type = ?", *goalType)
	}
	var goals []models.Goal
	if err := q.Find(&goals).Error; err != nil {
		logger.Get().Errorw("listing goals failed", "error", err)
		return []models.Goal{}, nil
	}
	return goals, nil
}

// UpdateGoal performs a partial merge of goal fields. The goal type and the
// savings progress are not updatable here; progress moves only through
// AddGoalProgress.
func (s *goalService) UpdateGoal(id string, input UpdateGoalInput) (*models.Goal, error) {
	goal, err := s.GetGoalByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Target != nil {
		if !input.Target.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		updates["target"] = *input.Target
	}
	if input.Deadline != nil {
		updates["deadline"] = input.Deadline
	}
	if input.Category != nil {
		if goal.Type == models.GoalTypeBudget && *input.Category == "" {
			return nil, apperrors.ErrCategoryMissing
		}
		updates["category"] = *input.Category
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
	}
	return s.GetGoalByID(id)
}

// DeleteGoal removes a goal. Unknown IDs are a no-op.
func (s *goalService) DeleteGoal(id string) error {
	if err := s.db.Delete(&models.Goal{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// AddGoalProgress records an explicit contribution toward a savings goal.
// Reaching the target raises a success notification.
func (s *goalService) AddGoalProgress(id string, amount decimal.Decimal) (*models.Goal, error) {
	goal, err := s.GetGoalByID(id)
	if err != nil {
		return nil, err
	}
	if goal.Type != models.GoalTypeSavings {
		return nil, apperrors.ErrNotSavingsGoal
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "progress amount must be greater than zero")
	}

	reachedBefore := goal.Current.GreaterThanOrEqual(goal.Target)
	goal.Current = goal.Current.Add(amount)
	if err := s.db.Model(goal).Update("current", goal.Current).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	if !reachedBefore && goal.Current.GreaterThanOrEqual(goal.Target) {
		msg := fmt.Sprintf("%s reached its target of %s", goal.Name, goal.Target.StringFixed(2))
		if _, err := s.notifications.Notify("Goal reached", msg, models.SeveritySuccess); err != nil {
			logger.Get().Errorw("goal notification failed", "goal_id", goal.ID, "error", err)
		}
	}
	return goal, nil
}

// GetBudgetProgress computes spending against a budget goal for the current
// calendar month. Spend is summed in memory with decimal arithmetic.
func (s *goalService) GetBudgetProgress(id string) (*BudgetProgress, error) {
	goal, err := s.GetGoalByID(id)
	if err != nil {
		return nil, err
	}
	if goal.Type != models.GoalTypeBudget {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "progress is only computed for budget goals")
	}

	now := s.now()
	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	var transactions []models.Transaction
	if err := s.db.
		Where("type = ? AND category = ? AND date >= ? AND date <= ?",
			models.TransactionTypeExpense, goal.Category, periodStart, periodEnd).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	spent := decimal.Zero
	for _, t := range transactions {
		spent = spent.Add(t.Amount)
	}

	percentage := decimal.Zero
	if goal.Target.IsPositive() {
		percentage = spent.Div(goal.Target).Mul(hundred)
	}

	return &BudgetProgress{
		GoalID:     goal.ID,
		Category:   goal.Category,
		Budgeted:   goal.Target,
		Spent:      spent,
		Remaining:  goal.Target.Sub(spent),
		Percentage: percentage,
	}, nil
}
