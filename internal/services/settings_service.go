package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "financehub/internal/errors"
	"financehub/internal/models"
)

// settingsService handles the settings singleton.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// GetSettings returns the singleton settings row, seeding defaults on first access.
func (s *settingsService) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.First(&settings, "id = ?", models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seeded := models.DefaultSettings()
		if err := s.db.Create(seeded).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return seeded, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &settings, nil
}

// UpdateSettings performs a partial merge of the settings singleton.
func (s *settingsService) UpdateSettings(input UpdateSettingsInput) (*models.Settings, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Currency != nil {
		updates["currency"] = *input.Currency
	}
	if input.Language != nil {
		updates["language"] = *input.Language
	}
	if input.Theme != nil {
		updates["theme"] = *input.Theme
	}
	if input.Notifications != nil {
		updates["notifications"] = *input.Notifications
	}

	if len(updates) > 0 {
		if err := s.db.Model(settings).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
	}
	return s.GetSettings()
}
