package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financehub/internal/errors"
	"financehub/internal/services"
)

// ProfileHandler handles the local profile PIN lock. The PIN is a
// convenience lock for the local profile, not access control.
type ProfileHandler struct {
	profileService services.ProfileServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// PINRequest carries a PIN for verification or update
type PINRequest struct {
	PIN string `json:"pin" binding:"required,min=4,max=8,numeric"`
}

// VerifyPIN checks the supplied PIN against the stored hash. The first
// verification on a fresh profile sets the PIN.
func (h *ProfileHandler) VerifyPIN(c *gin.Context) {
	var req PINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ok, err := h.profileService.VerifyPIN(req.PIN)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": ok})
}

// UpdatePIN replaces the stored PIN
func (h *ProfileHandler) UpdatePIN(c *gin.Context) {
	var req PINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.profileService.UpdatePIN(req.PIN); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "PIN updated successfully"})
}

// GetProfile returns the local profile without the PIN hash
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
