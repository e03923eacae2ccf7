package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPending, status, "absent status means pending")

	for _, v := range []string{"pending", "paid", "loan"} {
		status, err := ParseOrderStatus(v)
		require.NoError(t, err)
		assert.Equal(t, OrderStatus(v), status)
	}

	_, err = ParseOrderStatus("refunded")
	assert.Error(t, err)
}

func TestOrderStatusScan(t *testing.T) {
	var s OrderStatus
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, OrderStatusPending, s, "NULL status means pending")

	require.NoError(t, s.Scan(""))
	assert.Equal(t, OrderStatusPending, s)

	require.NoError(t, s.Scan("loan"))
	assert.Equal(t, OrderStatusLoan, s)

	require.NoError(t, s.Scan([]byte("paid")))
	assert.Equal(t, OrderStatusPaid, s)

	assert.Error(t, s.Scan(7))
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusPaid.Valid())
	assert.True(t, OrderStatusLoan.Valid())
	assert.False(t, OrderStatus("refunded").Valid())
	assert.False(t, OrderStatus("").Valid())
}
