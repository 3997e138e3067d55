package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "financehub/internal/errors"
	"financehub/internal/services"
)

// InvestmentHandler handles investment tracking requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// CreateInvestmentRequest represents the request payload for creating an investment
type CreateInvestmentRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	Type          string          `json:"type" binding:"required,max=50"`
	InitialAmount decimal.Decimal `json:"initial_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	AcquiredAt    *string         `json:"acquired_at"`
}

// CreateInvestment handles the creation of a new investment
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	acquired := time.Now()
	if req.AcquiredAt != nil && *req.AcquiredAt != "" {
		parsed, parseErr := parseFlexibleTime(*req.AcquiredAt)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		acquired = parsed
	}

	investment, err := h.investmentService.CreateInvestment(req.Name, req.Type, req.InitialAmount, req.CurrentAmount, acquired)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// GetInvestments handles the retrieval of all investments
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	investments, err := h.investmentService.ListInvestments()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investments": investments})
}

// GetInvestmentByID handles the retrieval of a specific investment
func (h *InvestmentHandler) GetInvestmentByID(c *gin.Context) {
	investment, err := h.investmentService.GetInvestmentByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// UpdateInvestmentRequest represents the request payload for updating an investment.
type UpdateInvestmentRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=100"`
	Type          *string          `json:"type" binding:"omitempty,max=50"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
}

// UpdateInvestment handles updating an existing investment
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.UpdateInvestment(c.Param("id"), services.UpdateInvestmentInput{
		Name:          req.Name,
		Type:          req.Type,
		CurrentAmount: req.CurrentAmount,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// DeleteInvestment handles the deletion of an investment
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	if err := h.investmentService.DeleteInvestment(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted successfully"})
}
