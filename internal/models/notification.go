package models

// NotificationSeverity represents the severity of a notification.
type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "info"
	SeveritySuccess NotificationSeverity = "success"
	SeverityWarning NotificationSeverity = "warning"
	SeverityError   NotificationSeverity = "error"
)

// Notification is raised by domain events (reminders coming due, goals
// reached, cards near their limit). Only the 50 most recent are kept.
type Notification struct {
	Base
	Title    string               `gorm:"not null" json:"title"`
	Message  string               `gorm:"not null" json:"message"`
	Severity NotificationSeverity `gorm:"not null;default:'info'" json:"severity"`
	Read     bool                 `gorm:"not null;default:false" json:"read"`
}
