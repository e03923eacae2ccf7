package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item represents a menu item. Price is always read live when computing an
// order's running total; orders never snapshot it.
type Item struct {
	ID    uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name  string          `gorm:"size:255;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	// Stock is nil for items that are never counted (e.g. made to order).
	Stock     *int           `gorm:"check:stock >= 0" json:"stock,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Tracked reports whether the item has a bounded stock count.
func (i *Item) Tracked() bool {
	return i.Stock != nil
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}
