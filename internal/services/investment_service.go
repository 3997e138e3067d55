package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "financehub/internal/errors"
	"financehub/internal/logger"
	"financehub/internal/models"
)

// investmentService handles investment tracking.
type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

// CreateInvestment records a new investment position.
func (s *investmentService) CreateInvestment(name, investmentType string, initial, current decimal.Decimal, acquired time.Time) (*models.Investment, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "investment name is required")
	}
	if initial.IsNegative() || current.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amounts cannot be negative")
	}
	if acquired.IsZero() {
		acquired = time.Now()
	}

	investment := &models.Investment{
		Name:            name,
		Type:            investmentType,
		InitialAmount:   initial,
		CurrentAmount:   current,
		AcquisitionDate: acquired,
	}
	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return investment, nil
}

// GetInvestmentByID retrieves an investment by ID.
func (s *investmentService) GetInvestmentByID(id string) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.First(&investment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &investment, nil
}

// ListInvestments returns all investments, newest first.
func (s *investmentService) ListInvestments() ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.db.Order("created_at DESC").Find(&investments).Error; err != nil {
		logger.Get().Errorw("listing investments failed", "error", err)
		return []models.Investment{}, nil
	}
	return investments, nil
}

// UpdateInvestment performs a partial merge of investment fields.
func (s *investmentService) UpdateInvestment(id string, input UpdateInvestmentInput) (*models.Investment, error) {
	investment, err := s.GetInvestmentByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.CurrentAmount != nil {
		if input.CurrentAmount.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current amount cannot be negative")
		}
		updates["current_amount"] = *input.CurrentAmount
	}

	if len(updates) > 0 {
		if err := s.db.Model(investment).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
	}
	return s.GetInvestmentByID(id)
}

// DeleteInvestment removes an investment. Unknown IDs are a no-op.
func (s *investmentService) DeleteInvestment(id string) error {
	if err := s.db.Delete(&models.Investment{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}
