package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the settlement status of an order.
// Pending is the initial state; Paid and Loan are terminal for accounting.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusLoan    OrderStatus = "loan"
)

// Valid reports whether s is one of the three known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusLoan:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus parses a status word. An empty string means pending.
func ParseOrderStatus(v string) (OrderStatus, error) {
	if v == "" {
		return OrderStatusPending, nil
	}
	s := OrderStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown order status %q", v)
	}
	return s, nil
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseOrderStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Scan treats NULL and empty strings as pending so that rows written before
// the status column existed still read back as open orders.
func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		parsed, err := ParseOrderStatus(v)
		if err != nil {
			return err
		}
		*s = parsed
	case []byte:
		parsed, err := ParseOrderStatus(string(v))
		if err != nil {
			return err
		}
		*s = parsed
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}
	return nil
}
