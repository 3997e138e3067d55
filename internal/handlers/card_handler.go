package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "financehub/internal/errors"
	"financehub/internal/services"
)

// CardHandler handles credit card requests.
type CardHandler struct {
	cardService services.CardServicer
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService services.CardServicer) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// CreateCardRequest represents the request payload for creating a card
type CreateCardRequest struct {
	Name       string          `json:"name" binding:"required,max=100"`
	Limit      decimal.Decimal `json:"limit"`
	Brand      string          `json:"brand" binding:"max=50"`
	Color      string          `json:"color" binding:"omitempty,hex_color"`
	ClosingDay int             `json:"closing_day" binding:"omitempty,day_of_month"`
	DueDay     int             `json:"due_day" binding:"omitempty,day_of_month"`
}

// CreateCard handles the creation of a new card
func (h *CardHandler) CreateCard(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	card, err := h.cardService.CreateCard(req.Name, req.Limit, req.Brand, req.Color, req.ClosingDay, req.DueDay)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"card": card})
}

// GetCards handles the retrieval of all cards
func (h *CardHandler) GetCards(c *gin.Context) {
	cards, err := h.cardService.ListCards()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// GetCardByID handles the retrieval of a specific card
func (h *CardHandler) GetCardByID(c *gin.Context) {
	card, err := h.cardService.GetCardByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// UpdateCardRequest represents the request payload for updating a card.
type UpdateCardRequest struct {
	Name       *string          `json:"name" binding:"omitempty,max=100"`
	Limit      *decimal.Decimal `json:"limit"`
	Brand      *string          `json:"brand" binding:"omitempty,max=50"`
	Color      *string          `json:"color" binding:"omitempty,hex_color"`
	ClosingDay *int             `json:"closing_day" binding:"omitempty,day_of_month"`
	DueDay     *int             `json:"due_day" binding:"omitempty,day_of_month"`
}

// UpdateCard handles updating an existing card
func (h *CardHandler) UpdateCard(c *gin.Context) {
	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	card, err := h.cardService.UpdateCard(c.Param("id"), services.UpdateCardInput{
		Name:       req.Name,
		Limit:      req.Limit,
		Brand:      req.Brand,
		Color:      req.Color,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// DeleteCard handles the deletion of a card
func (h *CardHandler) DeleteCard(c *gin.Context) {
	if err := h.cardService.DeleteCard(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}
