package entity

// Counter is a named monotonic counter. Order display numbers are allocated
// from the "order_number" row with a single UPDATE ... RETURNING, so two
// concurrent order creations can never observe the same value.
type Counter struct {
	Name  string `gorm:"size:50;primary_key"`
	Value int64  `gorm:"not null;default:0"`
}

// CounterOrderNumber is the counter row backing order display numbers.
const CounterOrderNumber = "order_number"

// TableName returns the table name for the Counter model
func (Counter) TableName() string {
	return "counters"
}
