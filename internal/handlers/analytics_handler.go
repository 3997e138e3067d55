package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "financehub/internal/errors"
	"financehub/internal/services"
)

// AnalyticsHandler handles read-only aggregate requests over the ledger.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetSummary handles the financial summary with optional transaction filters
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.analyticsService.FinancialSummary(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetExpensesByCategory handles the per-category expense breakdown
func (h *AnalyticsHandler) GetExpensesByCategory(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.analyticsService.ExpensesByCategory(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses_by_category": expenses})
}

// GetMonthlyEvolution handles the twelve-month income/expense/balance series
func (h *AnalyticsHandler) GetMonthlyEvolution(c *gin.Context) {
	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1970 || parsed > 9999 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year"))
			return
		}
		year = parsed
	}

	evolution, err := h.analyticsService.MonthlyEvolution(year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"monthly_evolution": evolution})
}

// GetAdvancedStatistics handles the derived current-year statistics
func (h *AnalyticsHandler) GetAdvancedStatistics(c *gin.Context) {
	stats, err := h.analyticsService.AdvancedStatistics()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}

// GetForecast handles the linear balance forecast
func (h *AnalyticsHandler) GetForecast(c *gin.Context) {
	months := 6
	if v := c.Query("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 24 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid months, must be between 1 and 24"))
			return
		}
		months = parsed
	}

	forecast, err := h.analyticsService.Forecast(months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecast": forecast})
}
