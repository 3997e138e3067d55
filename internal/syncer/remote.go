package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RemoteSnapshot is one collection snapshot in the remote store: the
// collection key and its full JSON payload.
type RemoteSnapshot struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Payload   []byte    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GormRemote is a RemoteStore backed by a GORM connection (postgres or
// sqlite). It stores one row per collection key. It does not implement
// Watcher: a plain database cannot push changes, so live updates only flow
// when the remote transport supports them.
type GormRemote struct {
	db *gorm.DB
}

// NewGormRemote migrates the snapshot table and returns the store.
func NewGormRemote(db *gorm.DB) (*GormRemote, error) {
	if err := db.AutoMigrate(&RemoteSnapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate remote snapshot table: %w", err)
	}
	return &GormRemote{db: db}, nil
}

// FetchAll returns the full remote snapshot.
func (r *GormRemote) FetchAll(ctx context.Context) (map[string]json.RawMessage, error) {
	var rows []RemoteSnapshot
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	snapshot := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		snapshot[row.Key] = json.RawMessage(row.Payload)
	}
	return snapshot, nil
}

// Put upserts one collection snapshot.
func (r *GormRemote) Put(ctx context.Context, key string, value json.RawMessage) error {
	row := RemoteSnapshot{Key: key, Payload: []byte(value), UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}

// Get returns one collection snapshot, or nil when absent.
func (r *GormRemote) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var row RemoteSnapshot
	err := r.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(row.Payload), nil
}
