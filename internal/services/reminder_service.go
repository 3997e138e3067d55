package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "financehub/internal/errors"
	"financehub/internal/logger"
	"financehub/internal/models"
)

// reminderDueWindow is how far ahead the due-scan warns, in days.
const reminderDueWindow = 3

// reminderService handles payment reminders and the due-scan that turns them
// into notifications.
type reminderService struct {
	db            *gorm.DB
	notifications NotificationServicer
}

// NewReminderService creates a new ReminderServicer.
func NewReminderService(db *gorm.DB, notifications NotificationServicer) ReminderServicer {
	return &reminderService{db: db, notifications: notifications}
}

// CreateReminder records a new payment reminder.
func (s *reminderService) CreateReminder(description string, amount decimal.Decimal, dueDate time.Time, category string) (*models.Reminder, error) {
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount cannot be negative")
	}
	if dueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due date is required")
	}

	reminder := &models.Reminder{
		Description: description,
		Amount:      amount,
		DueDate:     dueDate,
		Category:    category,
	}
	if err := s.db.Create(reminder).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return reminder, nil
}

// ListReminders returns all reminders ordered by due date.
func (s *reminderService) ListReminders() ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := s.db.Order("due_date ASC").Find(&reminders).Error; err != nil {
		logger.Get().Errorw("listing reminders failed", "error", err)
		return []models.Reminder{}, nil
	}
	return reminders, nil
}

// DeleteReminder removes a reminder. Unknown IDs are a no-op.
func (s *reminderService) DeleteReminder(id string) error {
	if err := s.db.Delete(&models.Reminder{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// ScanDue raises a warning for every reminder due within the next three days,
// at most once per reminder per calendar day. Overdue reminders are skipped,
// matching how the reminders list surfaces them separately.
func (s *reminderService) ScanDue(now time.Time) error {
	reminders, err := s.ListReminders()
	if err != nil {
		return err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, reminder := range reminders {
		due := reminder.DueDate
		dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
		daysUntil := int(dueDay.Sub(today).Hours() / 24)
		if daysUntil < 0 || daysUntil > reminderDueWindow {
			continue
		}

		already, err := s.notifications.HasToday(reminder.Description)
		if err != nil {
			logger.Get().Errorw("reminder dedupe check failed", "reminder_id", reminder.ID, "error", err)
			continue
		}
		if already {
			continue
		}

		var msg string
		switch daysUntil {
		case 0:
			msg = fmt.Sprintf("%s is due today", reminder.Description)
		case 1:
			msg = fmt.Sprintf("%s is due in 1 day", reminder.Description)
		default:
			msg = fmt.Sprintf("%s is due in %d days", reminder.Description, daysUntil)
		}
		if _, err := s.notifications.Notify("Upcoming payment", msg, models.SeverityWarning); err != nil {
			logger.Get().Errorw("reminder notification failed", "reminder_id", reminder.ID, "error", err)
		}
	}
	return nil
}
