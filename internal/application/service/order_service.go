package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/internal/domain/enum"
	"github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/internal/infrastructure/notify"
	"github.com/sulayman101/puntrms/pkg/apperror"
	"github.com/sulayman101/puntrms/pkg/pagination"
)

// OrderService handles order creation and queries
type OrderService struct {
	orderRepo   repository.OrderRepository
	itemRepo    repository.ItemRepository
	staffRepo   repository.StaffRepository
	counterRepo repository.CounterRepository
	notifier    notify.Notifier
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	staffRepo repository.StaffRepository,
	counterRepo repository.CounterRepository,
	notifier notify.Notifier,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		staffRepo:   staffRepo,
		counterRepo: counterRepo,
		notifier:    notifier,
	}
}

// OrderLineInput represents one item position on a new order
type OrderLineInput struct {
	ItemID uuid.UUID
	Qty    int
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	ServedBy uuid.UUID
	Lines    []OrderLineInput
}

// CreateOrder creates a new pending order with an immutable line set.
// The display number comes from an atomic counter, and bounded item stock is
// decremented atomically before the insert; a failed insert restores it.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if input.ServedBy == uuid.Nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "served_by", Message: "A waiter is required"},
		})
	}
	if len(input.Lines) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "lines", Message: "At least one item is required"},
		})
	}
	for _, line := range input.Lines {
		if line.Qty <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "lines", Message: "Quantity must be positive"},
			})
		}
	}

	waiter, err := s.staffRepo.GetByID(ctx, input.ServedBy)
	if err != nil {
		return nil, err
	}
	if waiter == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}

	// Batch fetch all items in one query
	itemIDs := make([]uuid.UUID, len(input.Lines))
	for i, line := range input.Lines {
		itemIDs[i] = line.ItemID
	}
	items, err := s.itemRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemMap := make(map[uuid.UUID]*entity.Item, len(items))
	for i := range items {
		itemMap[items[i].ID] = &items[i]
	}

	lines := make([]entity.OrderLine, 0, len(input.Lines))
	stockDecrements := make(map[uuid.UUID]int)
	for _, line := range input.Lines {
		item, exists := itemMap[line.ItemID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Item %s", line.ItemID))
		}
		lines = append(lines, entity.OrderLine{
			ItemID: line.ItemID,
			Qty:    line.Qty,
		})
		stockDecrements[item.ID] += line.Qty
	}

	// Race-condition safe: all decrements apply or none do.
	failedIDs, err := s.itemRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if item, exists := itemMap[id]; exists {
				failedNames = append(failedNames, item.Name)
			}
		}
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	number, err := s.counterRepo.Next(ctx, entity.CounterOrderNumber)
	if err != nil {
		_ = s.itemRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	order := &entity.Order{
		Number:   FormatOrderNumber(number),
		ServedBy: input.ServedBy,
		Time:     time.Now().UTC(),
		Status:   enum.OrderStatusPending,
		Lines:    lines,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// Stock was already decremented, restore it.
		_ = s.itemRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	s.notifier.OrderChanged(ctx, order.ID)
	return s.orderRepo.GetByID(ctx, order.ID)
}

// FormatOrderNumber renders a counter value as a display label. Three
// digits with zero padding, growing wider past 999 instead of wrapping.
func FormatOrderNumber(n int64) string {
	return fmt.Sprintf("order%03d", n)
}

// GetOrder retrieves an order and its running total at current prices
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, decimal.Decimal, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if order == nil {
		return nil, decimal.Zero, apperror.NewNotFoundError("Order")
	}

	total, err := s.runningTotal(ctx, order)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return order, total, nil
}

// GetOrderByNumber looks an order up by its display label, e.g. "order042"
func (s *OrderService) GetOrderByNumber(ctx context.Context, number string) (*entity.Order, decimal.Decimal, error) {
	order, err := s.orderRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if order == nil {
		return nil, decimal.Zero, apperror.NewNotFoundError("Order")
	}

	total, err := s.runningTotal(ctx, order)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return order, total, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

func (s *OrderService) runningTotal(ctx context.Context, order *entity.Order) (decimal.Decimal, error) {
	prices, err := s.itemRepo.PriceMap(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return order.Total(func(itemID uuid.UUID) (decimal.Decimal, bool) {
		p, ok := prices[itemID]
		return p, ok
	}), nil
}
