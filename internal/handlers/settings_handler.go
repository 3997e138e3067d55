package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financehub/internal/errors"
	"financehub/internal/services"
)

// SettingsHandler handles app settings requests.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings handles the retrieval of the settings singleton
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettingsRequest represents the request payload for updating settings.
type UpdateSettingsRequest struct {
	Currency      *string `json:"currency" binding:"omitempty,currency"`
	Language      *string `json:"language" binding:"omitempty,max=10"`
	Theme         *string `json:"theme" binding:"omitempty,oneof=light dark auto"`
	Notifications *bool   `json:"notifications"`
}

// UpdateSettings handles updating the settings singleton
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.settingsService.UpdateSettings(services.UpdateSettingsInput{
		Currency:      req.Currency,
		Language:      req.Language,
		Theme:         req.Theme,
		Notifications: req.Notifications,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
