package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "financehub/internal/errors"
	"financehub/internal/models"
)

// profileService handles the local profile PIN. This is a convenience lock
// carried over from the original application, not access control: no handler
// is gated on it.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// VerifyPIN checks the PIN against the stored hash. On first use, when no
// profile exists yet, the supplied PIN becomes the profile's PIN and the
// check succeeds.
func (s *profileService) VerifyPIN(pin string) (bool, error) {
	if pin == "" {
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "PIN is required")
	}

	var profile models.Profile
	err := s.db.First(&profile, "id = ?", models.ProfileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.createProfile(pin); err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PINHash), []byte(pin)) != nil {
		return false, nil
	}
	return true, nil
}

// UpdatePIN replaces the profile PIN, creating the profile if needed.
func (s *profileService) UpdatePIN(pin string) error {
	if pin == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "PIN is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var profile models.Profile
	dbErr := s.db.First(&profile, "id = ?", models.ProfileID).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return s.createProfile(pin)
	}
	if dbErr != nil {
		return apperrors.Wrap(apperrors.ErrStorage, dbErr)
	}

	if err := s.db.Model(&profile).Update("pin_hash", string(hash)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// GetProfile returns the local profile.
func (s *profileService) GetProfile() (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", models.ProfileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &profile, nil
}

func (s *profileService) createProfile(pin string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	profile := &models.Profile{
		ID:      models.ProfileID,
		Name:    "Usuário",
		PINHash: string(hash),
	}
	if err := s.db.Create(profile).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}
