package request

import "github.com/google/uuid"

// LoginRequest is the phone + PIN sign-in payload
type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	PIN   string `json:"pin" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// OrderLineRequest is one item position on a new order
type OrderLineRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
	Qty    int       `json:"qty" binding:"required,gt=0"`
}

// CreateOrderRequest creates a pending order
type CreateOrderRequest struct {
	ServedBy uuid.UUID          `json:"served_by" binding:"required"`
	Lines    []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// SettleRequest moves an order between settlement statuses. From is the
// status the client last displayed; the server refuses the write when the
// order has moved on since.
type SettleRequest struct {
	From           string     `json:"from" binding:"required"`
	To             string     `json:"to" binding:"required"`
	LoanCustomerID *uuid.UUID `json:"loan_customer_id,omitempty"`
}

// ItemRequest creates or updates a menu item
type ItemRequest struct {
	Name  string `json:"name" binding:"required"`
	Price string `json:"price" binding:"required"`
	Stock *int   `json:"stock,omitempty"`
}

// LoanCustomerRequest registers a loan customer
type LoanCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// CreateStaffRequest registers a staff member
type CreateStaffRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	PIN   string `json:"pin" binding:"required"`
	Role  string `json:"role"`
}

// ResetPINRequest replaces a staff member's PIN
type ResetPINRequest struct {
	PIN string `json:"pin" binding:"required"`
}
