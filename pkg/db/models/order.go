package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/teetribe/teetribe-backend/pkg/enums"
	"github.com/teetribe/teetribe-backend/pkg/types"
)

// Order is a placed checkout for a single shopper.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID        string              `gorm:"column:user_id;not null;index" json:"user_id"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Contact       types.Contact       `gorm:"column:contact;type:jsonb;serializer:json" json:"contact"`
	Shipping      types.Shipping      `gorm:"column:shipping;type:jsonb;serializer:json" json:"shipping"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null;default:'COD'" json:"payment_method"`
	Status        enums.OrderStatus   `gorm:"column:status;not null;default:'Pending'" json:"status"`
	Items         []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the primary key when the caller has not.
func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
