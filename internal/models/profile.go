package models

import "time"

// ProfileID is the primary key of the single local profile row.
const ProfileID = "local"

// Profile is the local user profile. The PIN is a convenience lock only,
// not real access control: handlers are not protected by it.
type Profile struct {
	ID        string    `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	PINHash   string    `gorm:"not null" json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}
