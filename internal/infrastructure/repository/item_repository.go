package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	domainRepo "github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/pkg/pagination"
	"gorm.io/gorm"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	var items []entity.Item
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *itemRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Item, int64, error) {
	var items []entity.Item
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Item{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&items).Error

	return items, total, err
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Item{}, "id = ?", id).Error
}

func (r *itemRepository) PriceMap(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	var items []entity.Item
	if err := r.db.WithContext(ctx).Select("id", "price").Find(&items).Error; err != nil {
		return nil, err
	}

	prices := make(map[uuid.UUID]decimal.Decimal, len(items))
	for i := range items {
		prices[items[i].ID] = items[i].Price
	}
	return prices, nil
}

// AtomicDecrementBatch decrements stock for tracked items in one transaction.
// Untracked items (NULL stock) always succeed; a tracked item with
// insufficient stock fails the whole batch.
func (r *itemRepository) AtomicDecrementBatch(ctx context.Context, quantities map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(quantities) == 0 {
		return nil, nil
	}

	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, qty := range quantities {
			result := tx.Model(&entity.Item{}).
				Where("id = ? AND (stock IS NULL OR stock >= ?)", id, qty).
				Update("stock", gorm.Expr("CASE WHEN stock IS NULL THEN NULL ELSE stock - ? END", qty))

			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}
		return nil
	})

	if len(failedIDs) > 0 {
		return failedIDs, nil
	}
	return nil, err
}

func (r *itemRepository) AtomicIncrementBatch(ctx context.Context, quantities map[uuid.UUID]int) error {
	if len(quantities) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, qty := range quantities {
			if err := tx.Model(&entity.Item{}).
				Where("id = ? AND stock IS NOT NULL", id).
				Update("stock", gorm.Expr("stock + ?", qty)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
