package models

import "time"

// SettingsID is the primary key of the singleton settings row.
const SettingsID = "default"

// Settings is a singleton record holding user preferences.
type Settings struct {
	ID            string    `gorm:"primaryKey" json:"-"`
	Currency      string    `gorm:"not null" json:"currency"`
	Language      string    `gorm:"not null" json:"language"`
	Theme         string    `gorm:"not null" json:"theme"`
	Notifications bool      `gorm:"not null" json:"notifications"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings seeded on first access.
func DefaultSettings() *Settings {
	return &Settings{
		ID:            SettingsID,
		Currency:      "EUR",
		Language:      "pt-BR",
		Theme:         "auto",
		Notifications: true,
	}
}
