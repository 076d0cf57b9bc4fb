package models

import (
	"time"

	"gorm.io/gorm"
)

// KVEntry is one key/value row of the persisted string store
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;type:varchar(255);primaryKey" json:"key"`
	Value     string    `gorm:"column:entry_value;type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeSave hook for KVEntry
func (e *KVEntry) BeforeSave(tx *gorm.DB) error {
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// TableName returns the table name for KVEntry
func (e *KVEntry) TableName() string {
	return "kv_entries"
}
