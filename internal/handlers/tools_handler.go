package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "financehub/internal/errors"
	"financehub/internal/services"
)

// ToolsHandler handles the financial planning calculators.
type ToolsHandler struct {
	calculatorService services.CalculatorServicer
}

// NewToolsHandler creates a new ToolsHandler.
func NewToolsHandler(calculatorService services.CalculatorServicer) *ToolsHandler {
	return &ToolsHandler{calculatorService: calculatorService}
}

// CompoundInterestRequest represents the request payload for a compound interest projection
type CompoundInterestRequest struct {
	Principal           decimal.Decimal `json:"principal"`
	MonthlyRate         decimal.Decimal `json:"monthly_rate"`
	Months              int             `json:"months" binding:"required,gt=0,lte=600"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
}

// CompoundInterest handles a compound interest projection
func (h *ToolsHandler) CompoundInterest(c *gin.Context) {
	var req CompoundInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result := h.calculatorService.CompoundInterest(req.Principal, req.MonthlyRate, req.Months, req.MonthlyContribution)

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// InstallmentRequest represents the request payload for an installment simulation
type InstallmentRequest struct {
	Total        decimal.Decimal `json:"total"`
	Installments int             `json:"installments" binding:"required,gt=0,lte=120"`
	MonthlyRate  decimal.Decimal `json:"monthly_rate"`
}

// SimulateInstallment handles an installment purchase simulation
func (h *ToolsHandler) SimulateInstallment(c *gin.Context) {
	var req InstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.calculatorService.SimulateInstallment(req.Total, req.Installments, req.MonthlyRate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// ConvertCurrencyRequest represents the request payload for a currency conversion
type ConvertCurrencyRequest struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from" binding:"required,currency"`
	To     string          `json:"to" binding:"required,currency"`
}

// ConvertCurrency handles a currency conversion with the built-in rate table
func (h *ToolsHandler) ConvertCurrency(c *gin.Context) {
	var req ConvertCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	converted, err := h.calculatorService.ConvertCurrency(req.Amount, req.From, req.To)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"amount":    req.Amount,
		"from":      req.From,
		"to":        req.To,
		"converted": converted,
	})
}
