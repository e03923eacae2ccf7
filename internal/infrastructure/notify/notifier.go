// Package notify pushes change notifications to POS clients. Clients do not
// receive data over the channel, only the id of what changed; they re-fetch
// the authoritative state over HTTP, so a dropped notification degrades to a
// manual refresh rather than stale totals.
package notify

import (
	"context"

	"github.com/google/uuid"
)

// Pub/sub channels
const (
	ChannelOrders = "orders.changed"
	ChannelLedger = "ledger.changed"
)

// Notifier broadcasts entity changes to subscribed clients
type Notifier interface {
	// OrderChanged announces that an order was created or settled.
	OrderChanged(ctx context.Context, orderID uuid.UUID)
	// LedgerChanged announces a new loan entry under a customer.
	LedgerChanged(ctx context.Context, customerID uuid.UUID)
	Close() error
}

type noopNotifier struct{}

// NewNoop returns a notifier that drops everything, for deployments
// without redis.
func NewNoop() Notifier {
	return noopNotifier{}
}

func (noopNotifier) OrderChanged(ctx context.Context, orderID uuid.UUID)      {}
func (noopNotifier) LedgerChanged(ctx context.Context, customerID uuid.UUID) {}
func (noopNotifier) Close() error                                            { return nil }
