package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financehub/internal/errors"
	"financehub/internal/models"
	"financehub/internal/services"
)

// NotificationHandler handles notification feed requests.
type NotificationHandler struct {
	notificationService services.NotificationServicer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService services.NotificationServicer) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// CreateNotificationRequest represents the request payload for raising a notification
type CreateNotificationRequest struct {
	Title    string                      `json:"title" binding:"required,max=100"`
	Message  string                      `json:"message" binding:"required,max=500"`
	Severity models.NotificationSeverity `json:"severity" binding:"omitempty,severity"`
}

// CreateNotification handles raising a notification manually
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	severity := req.Severity
	if severity == "" {
		severity = models.SeverityInfo
	}

	notification, err := h.notificationService.Notify(req.Title, req.Message, severity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notification": notification})
}

// GetNotifications handles the retrieval of notifications, newest first
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notificationService.ListNotifications(unreadOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead handles marking a notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notificationService.MarkRead(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// DeleteNotification handles the deletion of a notification
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	if err := h.notificationService.DeleteNotification(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

// ClearNotifications handles clearing the whole notification feed
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	if err := h.notificationService.ClearNotifications(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}
