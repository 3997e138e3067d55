package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financehub/internal/errors"
	"financehub/internal/models"
)

// CategoryHandler serves the default category catalogue.
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// GetCategories returns the suggested categories, optionally for one type
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		switch t {
		case models.TransactionTypeIncome, models.TransactionTypeExpense:
			c.JSON(http.StatusOK, gin.H{"categories": models.DefaultCategories(t)})
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be income or expense"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expense": models.DefaultCategories(models.TransactionTypeExpense),
		"income":  models.DefaultCategories(models.TransactionTypeIncome),
	})
}
