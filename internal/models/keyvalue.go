package models

import "time"

// KeyValue backs the SQL durable store: one row per storage key.
type KeyValue struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Value     JSONB     `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KeyValue) TableName() string { return "portal_storage" }
