package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff roles
const (
	RoleAdmin     = "admin"
	RoleWaiter    = "waiter"
	RoleCollector = "collector"
)

// Staff represents a restaurant employee who can sign in at the till
type Staff struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Phone     string         `gorm:"size:50;unique;not null" json:"phone"`
	PINHash   string         `gorm:"size:255;not null;column:pin_hash" json:"-"`
	Role      string         `gorm:"size:50;not null;default:waiter" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new staff member
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}
