package models

import "time"

// Product is a catalog listing.
type Product struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Price        float64   `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Description  string    `gorm:"column:description;not null;default:''" json:"description"`
	Image        string    `gorm:"column:image;not null;default:''" json:"image"`
	Slug         string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Sizes        []string  `gorm:"column:sizes;type:jsonb;serializer:json" json:"sizes"`
	Colors       []string  `gorm:"column:colors;type:jsonb;serializer:json" json:"colors"`
	Category     string    `gorm:"column:category;not null" json:"category"`
	MetaKeywords []string  `gorm:"column:meta_keywords;type:jsonb;serializer:json" json:"meta_keywords"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
