package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "financehub/internal/errors"
	"financehub/internal/logger"
	"financehub/internal/models"
	"financehub/internal/pagination"
)

// transactionService handles transaction CRUD and orchestrates the balance
// reconciler around every mutation that touches a credit card.
type transactionService struct {
	db    *gorm.DB
	cards CardServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, cards CardServicer) TransactionServicer {
	return &transactionService{db: db, cards: cards}
}

// CreateTransaction validates and stores a new transaction. A credit expense
// applies its amount to the referenced card inside the same database
// transaction, so the ledger and the card's derived limit move together.
func (s *transactionService) CreateTransaction(input CreateTransactionInput) (*models.Transaction, error) {
	if input.Type != models.TransactionTypeIncome && input.Type != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if !input.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.Description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = models.PaymentMethodCash
	}
	if input.PaymentMethod == models.PaymentMethodCredit {
		if input.CardID == nil || *input.CardID == "" {
			return nil, apperrors.ErrCardRequired
		}
		if _, err := s.cards.GetCardByID(*input.CardID); err != nil {
			return nil, err
		}
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	transaction := &models.Transaction{
		Type:          input.Type,
		Description:   input.Description,
		Category:      input.Category,
		Amount:        input.Amount,
		Date:          input.Date,
		PaymentMethod: input.PaymentMethod,
		CardID:        input.CardID,
		Tags:          input.Tags,
		Notes:         input.Notes,
		Recurring:     input.Recurring,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if transaction.IsCreditExpense() {
			return s.cards.ApplyTransactionEffect(tx, *transaction.CardID, transaction.Amount, EffectApply)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// UpdateTransaction performs a partial merge and reconciles card limits: the
// old effect is fully reversed under the old card and amount before the new
// effect is applied, even when both refer to the same card. The net result
// for an amount change on one card is a plain delta adjustment.
func (s *transactionService) UpdateTransaction(id string, input UpdateTransactionInput) (*models.Transaction, error) {
	old, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Type != nil {
		if *input.Type != models.TransactionTypeIncome && *input.Type != models.TransactionTypeExpense {
			return nil, apperrors.ErrInvalidTransactionType
		}
		updates["type"] = *input.Type
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *input.Amount
	}
	if input.Date != nil {
		updates["date"] = *input.Date
	}
	if input.PaymentMethod != nil {
		updates["payment_method"] = *input.PaymentMethod
	}
	if input.CardID != nil {
		if *input.CardID == "" {
			updates["card_id"] = nil
		} else {
			updates["card_id"] = *input.CardID
		}
	}
	if input.Tags != nil {
		updates["tags"] = input.Tags
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.Recurring != nil {
		updates["recurring"] = *input.Recurring
	}

	// Validate the post-merge state before writing anything.
	merged := *old
	if v, ok := updates["type"]; ok {
		merged.Type = v.(models.TransactionType)
	}
	if v, ok := updates["payment_method"]; ok {
		merged.PaymentMethod = v.(models.PaymentMethod)
	}
	if input.CardID != nil {
		if *input.CardID == "" {
			merged.CardID = nil
		} else {
			merged.CardID = input.CardID
		}
	}
	if merged.PaymentMethod == models.PaymentMethodCredit {
		if merged.CardID == nil || *merged.CardID == "" {
			return nil, apperrors.ErrCardRequired
		}
		if input.CardID != nil {
			if _, err := s.cards.GetCardByID(*merged.CardID); err != nil {
				return nil, err
			}
		}
	}

	var updated models.Transaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Transaction{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
		}
		if err := tx.First(&updated, "id = ?", id).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		// Reverse-then-apply, unconditionally and in that order, so the used
		// limit never carries a transient double count.
		if old.IsCreditExpense() {
			if err := s.cards.ApplyTransactionEffect(tx, *old.CardID, old.Amount, EffectReverse); err != nil {
				return err
			}
		}
		if updated.IsCreditExpense() {
			if err := s.cards.ApplyTransactionEffect(tx, *updated.CardID, updated.Amount, EffectApply); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTransaction removes a transaction, reversing its card effect first.
// Deleting an unknown ID is a no-op: a second delete of the same transaction
// must not reverse the effect twice.
func (s *transactionService) DeleteTransaction(id string) error {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			return nil
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if transaction.IsCreditExpense() {
			if err := s.cards.ApplyTransactionEffect(tx, *transaction.CardID, transaction.Amount, EffectReverse); err != nil {
				return err
			}
		}
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
}

// GetTransactionByID retrieves a transaction by ID.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &transaction, nil
}

// ListTransactions retrieves a paginated, filtered list sorted by date descending.
func (s *transactionService) ListTransactions(filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// AllTransactions retrieves every transaction matching the filter, sorted by
// date descending. Used by the aggregation engine and the exporter. A storage
// failure degrades to an empty result and a log line rather than an error.
func (s *transactionService) AllTransactions(filter TransactionFilter) ([]models.Transaction, error) {
	var transactions []models.Transaction
	q := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)
	if err := q.Order("date DESC").Find(&transactions).Error; err != nil {
		logger.Get().Errorw("listing transactions failed", "error", err)
		return []models.Transaction{}, nil
	}
	return transactions, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(description) LIKE ? OR LOWER(notes) LIKE ?", needle, needle)
	}
	return q
}
