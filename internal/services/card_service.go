package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "financehub/internal/errors"
	"financehub/internal/logger"
	"financehub/internal/models"
)

// limitAlertThreshold is the used-limit fraction above which a card raises a
// warning notification.
var limitAlertThreshold = decimal.NewFromFloat(0.8)

// cardService owns the card collection and the balance reconciler.
type cardService struct {
	db            *gorm.DB
	notifications NotificationServicer
}

// NewCardService creates a new CardServicer.
func NewCardService(db *gorm.DB, notifications NotificationServicer) CardServicer {
	return &cardService{db: db, notifications: notifications}
}

// CreateCard creates a card with a fresh limit: nothing used, everything available.
func (s *cardService) CreateCard(name string, limit decimal.Decimal, brand, color string, closingDay, dueDay int) (*models.Card, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card name is required")
	}
	if !limit.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "credit limit must be greater than zero")
	}
	if closingDay < 1 || closingDay > 31 || dueDay < 1 || dueDay > 31 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "closing and due days must be between 1 and 31")
	}

	card := &models.Card{
		Name:           name,
		Limit:          limit,
		LimitUsed:      decimal.Zero,
		AvailableLimit: limit,
		Brand:          brand,
		Color:          color,
		ClosingDay:     closingDay,
		DueDay:         dueDay,
	}

	if err := s.db.Create(card).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return card, nil
}

// GetCardByID retrieves a card by ID.
func (s *cardService) GetCardByID(id string) (*models.Card, error) {
	var card models.Card
	if err := s.db.First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &card, nil
}

// ListCards returns all cards, newest first.
func (s *cardService) ListCards() ([]models.Card, error) {
	var cards []models.Card
	if err := s.db.Order("created_at DESC").Find(&cards).Error; err != nil {
		// Degrade to an empty result rather than failing the read path.
		logger.Get().Errorw("listing cards failed", "error", err)
		return []models.Card{}, nil
	}
	return cards, nil
}

// UpdateCard performs a partial merge of card fields. Changing the limit
// recomputes the available limit against the current used amount.
func (s *cardService) UpdateCard(id string, input UpdateCardInput) (*models.Card, error) {
	card, err := s.GetCardByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Limit != nil {
		if !input.Limit.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "credit limit must be greater than zero")
		}
		updates["limit"] = *input.Limit
		updates["available_limit"] = input.Limit.Sub(card.LimitUsed)
	}
	if input.Brand != nil {
		updates["brand"] = *input.Brand
	}
	if input.Color != nil {
		updates["color"] = *input.Color
	}
	if input.ClosingDay != nil {
		if *input.ClosingDay < 1 || *input.ClosingDay > 31 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "closing day must be between 1 and 31")
		}
		updates["closing_day"] = *input.ClosingDay
	}
	if input.DueDay != nil {
		if *input.DueDay < 1 || *input.DueDay > 31 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due day must be between 1 and 31")
		}
		updates["due_day"] = *input.DueDay
	}

	if len(updates) > 0 {
		if err := s.db.Model(card).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
	}

	return s.GetCardByID(id)
}

// DeleteCard removes a card. Transactions referencing it keep their dangling
// CardID; readers must tolerate the missing card.
func (s *cardService) DeleteCard(id string) error {
	result := s.db.Delete(&models.Card{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	return nil
}

// ApplyTransactionEffect adjusts the card's used limit by amount in the given
// direction and recomputes the available limit. Reverse floors the used limit
// at zero so out-of-order reversals can never drive it negative. A card that
// no longer exists is a no-op: the amount is simply not tracked anywhere.
func (s *cardService) ApplyTransactionEffect(tx *gorm.DB, cardID string, amount decimal.Decimal, direction EffectDirection) error {
	var card models.Card
	if err := tx.First(&card, "id = ?", cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Get().Warnw("card missing during reconciliation, effect dropped",
				"card_id", cardID,
				"amount", amount.String(),
			)
			return nil
		}
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}

	switch direction {
	case EffectApply:
		card.LimitUsed = card.LimitUsed.Add(amount)
	case EffectReverse:
		card.LimitUsed = card.LimitUsed.Sub(amount)
		if card.LimitUsed.IsNegative() {
			card.LimitUsed = decimal.Zero
		}
	}
	card.AvailableLimit = card.Limit.Sub(card.LimitUsed)

	updates := map[string]interface{}{
		"limit_used":      card.LimitUsed,
		"available_limit": card.AvailableLimit,
	}
	if err := tx.Model(&models.Card{}).Where("id = ?", card.ID).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}

	if direction == EffectApply {
		s.checkLimitAlert(&card)
	}
	return nil
}

// checkLimitAlert raises a warning when the card crosses 80% of its limit.
// A failed notification never fails the mutation that triggered it.
func (s *cardService) checkLimitAlert(card *models.Card) {
	if !card.Limit.IsPositive() {
		return
	}
	usage := card.LimitUsed.Div(card.Limit)
	if usage.LessThan(limitAlertThreshold) {
		return
	}
	if already, err := s.notifications.HasToday(card.Name); err != nil || already {
		return
	}
	pct := usage.Mul(decimal.NewFromInt(100)).Round(0)
	msg := fmt.Sprintf("%s is at %s%% of its limit", card.Name, pct.String())
	if _, err := s.notifications.Notify("Card limit", msg, models.SeverityWarning); err != nil {
		logger.Get().Errorw("card limit notification failed", "card_id", card.ID, "error", err)
	}
}
