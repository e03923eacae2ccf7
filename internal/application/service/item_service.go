package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/pkg/apperror"
	"github.com/sulayman101/puntrms/pkg/pagination"
)

// ItemService manages the menu
type ItemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// ItemInput represents the create or update item input. A nil Stock means
// the item is not stock tracked.
type ItemInput struct {
	Name  string
	Price decimal.Decimal
	Stock *int
}

func (s *ItemService) validate(input *ItemInput) error {
	var fieldErrors []apperror.FieldError

	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price must be positive"})
	}
	if input.Stock != nil && *input.Stock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "stock", Message: "Stock cannot be negative"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateItem adds a menu item
func (s *ItemService) CreateItem(ctx context.Context, input *ItemInput) (*entity.Item, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	item := &entity.Item{
		Name:  strings.TrimSpace(input.Name),
		Price: input.Price,
		Stock: input.Stock,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves a menu item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems lists menu items with optional name search
func (s *ItemService) ListItems(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Item], error) {
	items, total, err := s.itemRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// UpdateItem edits a menu item. Price changes take effect immediately for
// every pending order's running total; already-recorded loan amounts stay
// as booked.
func (s *ItemService) UpdateItem(ctx context.Context, id uuid.UUID, input *ItemInput) (*entity.Item, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Price = input.Price
	item.Stock = input.Stock

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem soft deletes a menu item. Lines on existing orders keep the
// item id; reports count those lines as zero sales from now on.
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}
	return s.itemRepo.Delete(ctx, id)
}
