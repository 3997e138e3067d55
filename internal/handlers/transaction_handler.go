package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "financehub/internal/errors"
	"financehub/internal/models"
	"financehub/internal/pagination"
	"financehub/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Type          models.TransactionType `json:"type" binding:"required,transaction_type"`
	Description   string                 `json:"description" binding:"required,max=500"`
	Category      string                 `json:"category" binding:"required,max=100"`
	Amount        decimal.Decimal        `json:"amount"`
	Date          *string                `json:"date"`
	PaymentMethod models.PaymentMethod   `json:"payment_method" binding:"omitempty,payment_method"`
	CardID        *string                `json:"card_id"`
	Tags          []string               `json:"tags"`
	Notes         string                 `json:"notes" binding:"max=1000"`
	Recurring     bool                   `json:"recurring"`
}

// CreateTransaction handles the creation of a new transaction
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transactionDate := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		transactionDate = parsed
	}

	transaction, err := h.transactionService.CreateTransaction(services.CreateTransactionInput{
		Type:          req.Type,
		Description:   req.Description,
		Category:      req.Category,
		Amount:        req.Amount,
		Date:          transactionDate,
		PaymentMethod: req.PaymentMethod,
		CardID:        req.CardID,
		Tags:          req.Tags,
		Notes:         req.Notes,
		Recurring:     req.Recurring,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles the retrieval of transactions with optional filters
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("start_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.StartDate = &t
	}

	if v := c.Query("end_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.EndDate = &t
	}

	if v := c.Query("type"); v != "" {
		txType := models.TransactionType(v)
		switch txType {
		case models.TransactionTypeIncome, models.TransactionTypeExpense:
			filter.Type = &txType
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be income or expense")
		}
	}

	if v := c.Query("category"); v != "" {
		category := v
		filter.Category = &category
	}

	filter.Search = c.Query("search")

	return filter, nil
}

// GetTransactionByID handles the retrieval of a specific transaction
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transaction, err := h.transactionService.GetTransactionByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransactionRequest represents the request payload for updating a transaction.
type UpdateTransactionRequest struct {
	Type          *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Description   *string                 `json:"description" binding:"omitempty,max=500"`
	Category      *string                 `json:"category" binding:"omitempty,max=100"`
	Amount        *decimal.Decimal        `json:"amount"`
	Date          *string                 `json:"date"`
	PaymentMethod *models.PaymentMethod   `json:"payment_method" binding:"omitempty,payment_method"`
	CardID        *string                 `json:"card_id"`
	Tags          []string                `json:"tags"`
	Notes         *string                 `json:"notes" binding:"omitempty,max=1000"`
	Recurring     *bool                   `json:"recurring"`
}

// UpdateTransaction handles updating an existing transaction
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateTransactionInput{
		Type:          req.Type,
		Description:   req.Description,
		Category:      req.Category,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		CardID:        req.CardID,
		Tags:          req.Tags,
		Notes:         req.Notes,
		Recurring:     req.Recurring,
	}

	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		input.Date = &parsed
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles the deletion of a transaction
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
