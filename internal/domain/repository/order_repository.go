package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/internal/domain/enum"
	"github.com/sulayman101/puntrms/pkg/pagination"
)

// OrderFilterParams holds filter parameters for listing orders
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	ServedBy   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create persists an order together with its line items. Lines are
	// immutable afterwards.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByNumber(ctx context.Context, number string) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// Snapshot returns the full order collection with lines preloaded,
	// for the report aggregator to fold.
	Snapshot(ctx context.Context) ([]entity.Order, error)
	// UpdateStatusCAS conditionally moves the order from one status to
	// another. It fails with apperror.ErrSettlementConflict when the
	// order is no longer in the expected status.
	UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus, collector string) error
	// SettleLoan performs the status CAS and the ledger insert as one
	// database transaction. When the ledger already holds an entry for
	// this order the insert is skipped and the status write still
	// applies, keeping the operation idempotent.
	SettleLoan(ctx context.Context, id uuid.UUID, from enum.OrderStatus, collector string, entry entity.LoanEntry) error
	CountByStatus(ctx context.Context, status enum.OrderStatus) (int64, error)
}
