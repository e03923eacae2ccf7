package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisNotifier struct {
	rdb    *redis.Client
	logger *zap.SugaredLogger
}

// NewRedis creates a notifier that publishes change events on redis pub/sub.
// Publish failures are logged and swallowed; settlement must not fail
// because a client refresh hint could not be delivered.
func NewRedis(addr string, logger *zap.SugaredLogger) (Notifier, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &redisNotifier{rdb: rdb, logger: logger}, nil
}

func (n *redisNotifier) OrderChanged(ctx context.Context, orderID uuid.UUID) {
	n.publish(ctx, ChannelOrders, orderID)
}

func (n *redisNotifier) LedgerChanged(ctx context.Context, customerID uuid.UUID) {
	n.publish(ctx, ChannelLedger, customerID)
}

func (n *redisNotifier) publish(ctx context.Context, channel string, id uuid.UUID) {
	if err := n.rdb.Publish(ctx, channel, id.String()).Err(); err != nil {
		n.logger.Warnw("notify publish failed", "channel", channel, "id", id, "err", err)
	}
}

func (n *redisNotifier) Close() error {
	return n.rdb.Close()
}
