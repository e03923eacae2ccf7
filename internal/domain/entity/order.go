package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a point-of-sale order. The line items are written once at
// creation; afterwards only Status and Collector ever change. Orders are
// never deleted in normal operation.
type Order struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	// Number is the human-readable sequential label ("order042"),
	// allocated from an atomic counter.
	Number    string           `gorm:"size:50;unique;not null" json:"number"`
	ServedBy  uuid.UUID        `gorm:"type:uuid;not null;index" json:"served_by"`
	Time      time.Time        `gorm:"not null;index" json:"time"`
	Status    enum.OrderStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	// Collector is the name of the staff member who last moved the order
	// out of pending; empty while the order is open.
	Collector string         `gorm:"size:255" json:"collector"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Server Staff       `gorm:"foreignKey:ServedBy" json:"-"`
	Lines  []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Total computes the order's running total against current item prices.
// Items missing from the lookup (deleted from the menu) count as zero.
func (o *Order) Total(price func(itemID uuid.UUID) (decimal.Decimal, bool)) decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		if p, ok := price(line.ItemID); ok {
			total = total.Add(p.Mul(decimal.NewFromInt(int64(line.Qty))))
		}
	}
	return total
}

// ItemCount returns the total quantity across all lines.
func (o *Order) ItemCount() int {
	n := 0
	for _, line := range o.Lines {
		n += line.Qty
	}
	return n
}

// OrderLine represents a single item position on an order
type OrderLine struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID  uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	Qty     int       `gorm:"not null;check:qty > 0" json:"qty"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
	Item  Item  `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order line
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}
