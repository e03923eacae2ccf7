package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoanCustomer represents a customer who is allowed to defer payment
type LoanCustomer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Phone     string         `gorm:"size:50" json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Loans []LoanEntry `gorm:"foreignKey:CustomerID" json:"loans,omitempty"`
}

// BeforeCreate generates a UUID before creating a new loan customer
func (c *LoanCustomer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LoanCustomer model
func (LoanCustomer) TableName() string {
	return "loan_customers"
}

// LoanEntry is a single deferred debt in the ledger. OrderID is unique
// across the whole table: no order can ever be loaned twice, to anyone.
// Amount is frozen at settlement time and never follows later price edits.
type LoanEntry struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_loan_entries_order_id" json:"order_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Date       time.Time       `gorm:"not null" json:"date"`
	// ServedBy is a name snapshot of the order's original server, not a
	// live staff reference.
	ServedBy  string    `gorm:"size:255" json:"served_by"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Customer LoanCustomer `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new loan entry
func (e *LoanEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LoanEntry model
func (LoanEntry) TableName() string {
	return "loan_entries"
}
