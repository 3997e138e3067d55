package services

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	apperrors "financehub/internal/errors"
	"financehub/internal/models"
)

// Collection keys of the export/import envelope. These are the only
// top-level keys the importer recognizes; anything else is ignored.
const (
	KeyTransactions  = "transactions"
	KeyCards         = "cards"
	KeyGoals         = "goals"
	KeyInvestments   = "investments"
	KeySettings      = "settings"
	KeyNotifications = "notifications"
	KeyReminders     = "reminders"
)

// CollectionKeys lists every envelope key, in export order.
var CollectionKeys = []string{
	KeyTransactions,
	KeyCards,
	KeyGoals,
	KeyInvestments,
	KeySettings,
	KeyNotifications,
	KeyReminders,
}

// exportService builds and consumes the envelope: one JSON object whose
// top-level keys name each collection and whose values are full snapshots.
type exportService struct {
	db *gorm.DB
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB) ExportServicer {
	return &exportService{db: db}
}

// Export snapshots every collection into the envelope.
func (s *exportService) Export() (map[string]json.RawMessage, error) {
	envelope := make(map[string]json.RawMessage, len(CollectionKeys))

	for _, key := range CollectionKeys {
		value, err := s.exportKey(key)
		if err != nil {
			return nil, err
		}
		envelope[key] = value
	}
	return envelope, nil
}

func (s *exportService) exportKey(key string) (json.RawMessage, error) {
	var out interface{}
	switch key {
	case KeyTransactions:
		var rows []models.Transaction
		if err := s.db.Order("date DESC").Find(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		out = rows
	case KeyCards:
		var rows []models.Card
		if err := s.db.Find(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		out = rows
	case KeyGoals:
		var rows []models.Goal
		if err := s.db.Find(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		out = rows
	case KeyInvestments:
		var rows []models.Investment
		if err := s.db.Find(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		out = rows
	case KeySettings:
		var settings models.Settings
		err := s.db.First(&settings, "id = ?", models.SettingsID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			out = models.DefaultSettings()
		} else if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		} else {
			out = settings
		}
	case KeyNotifications:
		var rows []models.Notification
		if err := s.db.Order("created_at DESC").Find(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		out = rows
	case KeyReminders:
		var rows []models.Reminder
		if err := s.db.Find(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		out = rows
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidEnvelope, "unknown collection key: "+key)
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return raw, nil
}

// Import replaces collections key by key from the envelope, atomically.
// Keys absent from the envelope keep their current contents; unknown keys
// are ignored. No record-level merge happens: each named collection is
// replaced wholesale.
func (s *exportService) Import(envelope map[string]json.RawMessage) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range CollectionKeys {
			value, ok := envelope[key]
			if !ok {
				continue
			}
			if err := importKey(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// ImportKey replaces the single named collection wholesale. Used by the sync
// layer when the remote pushes a per-key change.
func (s *exportService) ImportKey(key string, value json.RawMessage) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return importKey(tx, key, value)
	})
}

func importKey(tx *gorm.DB, key string, value json.RawMessage) error {
	switch key {
	case KeyTransactions:
		var rows []models.Transaction
		if err := json.Unmarshal(value, &rows); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidEnvelope, err)
		}
		return replaceCollection(tx, &models.Transaction{}, rows)
	case KeyCards:
		var rows []models.Card
		if err := json.Unmarshal(value, &rows); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidEnvelope, err)
		}
		return replaceCollection(tx, &models.Card{}, rows)
	case KeyGoals:
		var rows []models.Goal
		if err := json.Unmarshal(value, &rows); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidEnvelope, err)
		}
		return replaceCollection(tx, &models.Goal{}, rows)
	case KeyInvestments:
		var rows []models.Investment
		if err := json.Unmarshal(value, &rows); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidEnvelope, err)
		}
		return replaceCollection(tx, &models.Investment{}, rows)
	case KeySettings:
		var settings models.Settings
		if err := json.Unmarshal(value, &settings); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidEnvelope, err)
		}
		settings.ID = models.SettingsID
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.Settings{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if err := tx.Create(&settings).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	case KeyNotifications:
		var rows []models.Notification
		if err := json.Unmarshal(value, &rows); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidEnvelope, err)
		}
		return replaceCollection(tx, &models.Notification{}, rows)
	case KeyReminders:
		var rows []models.Reminder
		if err := json.Unmarshal(value, &rows); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidEnvelope, err)
		}
		return replaceCollection(tx, &models.Reminder{}, rows)
	}
	// Unknown keys in an imported envelope are skipped, not an error.
	return nil
}

// replaceCollection wipes a collection and inserts the snapshot rows.
func replaceCollection[T any](tx *gorm.DB, model interface{}, rows []T) error {
	if err := tx.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// ClearAll wipes every collection and reseeds the default settings.
func (s *exportService) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Transaction{},
			&models.Card{},
			&models.Goal{},
			&models.Investment{},
			&models.Notification{},
			&models.Reminder{},
			&models.Settings{},
		} {
			if err := tx.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
		}
		if err := tx.Create(models.DefaultSettings()).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
}
