package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "financehub/internal/errors"
	"financehub/internal/logger"
	"financehub/internal/models"
)

// maxNotifications caps the feed at the most recent entries.
const maxNotifications = 50

// notificationService handles the notification feed.
type notificationService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db, now: time.Now}
}

// Notify adds an unread notification and trims the feed to the 50 most recent.
func (s *notificationService) Notify(title, message string, severity models.NotificationSeverity) (*models.Notification, error) {
	if title == "" || message == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title and message are required")
	}
	if severity == "" {
		severity = models.SeverityInfo
	}

	notification := &models.Notification{
		Title:    title,
		Message:  message,
		Severity: severity,
		Read:     false,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(notification).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		var overflow []models.Notification
		if err := tx.Order("created_at DESC, id DESC").
			Offset(maxNotifications).
			Find(&overflow).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		for _, stale := range overflow {
			if err := tx.Unscoped().Delete(&models.Notification{}, "id = ?", stale.ID).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notification, nil
}

// ListNotifications returns the feed, newest first.
func (s *notificationService) ListNotifications(unreadOnly bool) ([]models.Notification, error) {
	q := s.db.Order("created_at DESC, id DESC")
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var notifications []models.Notification
	if err := q.Find(&notifications).Error; err != nil {
		logger.Get().Errorw("listing notifications failed", "error", err)
		return []models.Notification{}, nil
	}
	return notifications, nil
}

// MarkRead marks a notification as read.
func (s *notificationService) MarkRead(id string) error {
	result := s.db.Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// DeleteNotification removes a single notification. Unknown IDs are a no-op.
func (s *notificationService) DeleteNotification(id string) error {
	if err := s.db.Unscoped().Delete(&models.Notification{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// ClearNotifications empties the feed.
func (s *notificationService) ClearNotifications() error {
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.Notification{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// HasToday reports whether a notification containing the given substring was
// already raised today. Used to deduplicate recurring alerts.
func (s *notificationService) HasToday(substr string) (bool, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("message LIKE ? AND created_at >= ?", "%"+substr+"%", dayStart).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return count > 0, nil
}
