package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "financehub/internal/errors"
	"financehub/internal/services"
)

// ReminderHandler handles payment reminder requests.
type ReminderHandler struct {
	reminderService services.ReminderServicer
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService services.ReminderServicer) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// CreateReminderRequest represents the request payload for creating a reminder
type CreateReminderRequest struct {
	Description string          `json:"description" binding:"required,max=200"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date" binding:"required"`
	Category    string          `json:"category" binding:"max=100"`
}

// CreateReminder handles the creation of a new reminder
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	dueDate, err := parseFlexibleTime(req.DueDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid due_date format, use RFC3339 or YYYY-MM-DD"))
		return
	}

	reminder, err := h.reminderService.CreateReminder(req.Description, req.Amount, dueDate, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reminder": reminder})
}

// GetReminders handles the retrieval of all reminders
func (h *ReminderHandler) GetReminders(c *gin.Context) {
	reminders, err := h.reminderService.ListReminders()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// DeleteReminder handles the deletion of a reminder
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	if err := h.reminderService.DeleteReminder(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully"})
}

// ScanDue triggers an immediate scan for upcoming payment reminders.
func (h *ReminderHandler) ScanDue(c *gin.Context) {
	if err := h.reminderService.ScanDue(time.Now()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder scan completed"})
}
