package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/pkg/pagination"
)

// ItemRepository defines the interface for menu item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Item, int64, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	// PriceMap returns the current price of every item, keyed by id.
	// Report sales always use these live prices, never snapshots.
	PriceMap(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error)
	// AtomicDecrementBatch decrements stock for tracked items in a single
	// statement per item, guarded so stock never goes negative. It
	// returns the ids it could not decrement.
	AtomicDecrementBatch(ctx context.Context, quantities map[uuid.UUID]int) ([]uuid.UUID, error)
	// AtomicIncrementBatch restores stock, used to compensate a failed
	// order creation.
	AtomicIncrementBatch(ctx context.Context, quantities map[uuid.UUID]int) error
}
