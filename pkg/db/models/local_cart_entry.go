package models

import "time"

// LocalCartEntry is the storefront's durable copy of its cart, one row per key.
type LocalCartEntry struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name independent of gorm's pluralizer.
func (LocalCartEntry) TableName() string {
	return "local_cart_entries"
}
