package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/internal/domain/enum"
	domainRepo "github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/pkg/apperror"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	// Lines are inserted through the association in the same insert; they
	// are never updated afterwards.
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Lines.Item").
		Preload("Server").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Lines.Item").
		First(&order, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.ServedBy != nil {
		query = query.Where("served_by = ?", *params.ServedBy)
	}
	if params.StartDate != nil {
		query = query.Where("time >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("time <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Lines").
		Order("time DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) Snapshot(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus, collector string) error {
	return r.casStatus(r.db.WithContext(ctx), id, from, to, collector)
}

// casStatus is the conditional status write. Zero rows affected means the
// order either does not exist or is no longer in the expected status.
func (r *orderRepository) casStatus(tx *gorm.DB, id uuid.UUID, from, to enum.OrderStatus, collector string) error {
	result := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":    to,
			"collector": collector,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.ErrSettlementConflict
	}
	return nil
}

func (r *orderRepository) SettleLoan(ctx context.Context, id uuid.UUID, from enum.OrderStatus, collector string, entry entity.LoanEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.casStatus(tx, id, from, enum.OrderStatusLoan, collector); err != nil {
			return err
		}

		// An existing entry for the same customer means the debt is
		// already recorded; the status write stands and the insert is
		// skipped so a retried transition stays idempotent. A different
		// customer is not a retry: the whole transaction rolls back so
		// the debt cannot silently stay booked to the wrong account.
		var existing entity.LoanEntry
		err := tx.Where("order_id = ?", id).First(&existing).Error
		if err == nil {
			if existing.CustomerID != entry.CustomerID {
				return apperror.ErrDuplicateOrderLoan
			}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&entry).Error; err != nil {
			// Two settlements raced past the existence check; the
			// unique index on order_id decides.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.ErrDuplicateOrderLoan
			}
			return err
		}
		return nil
	})
}

func (r *orderRepository) CountByStatus(ctx context.Context, status enum.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
