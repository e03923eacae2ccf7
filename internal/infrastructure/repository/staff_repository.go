package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	domainRepo "github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/pkg/pagination"
	"gorm.io/gorm"
)

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) domainRepo.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	var staff entity.Staff
	err := r.db.WithContext(ctx).First(&staff, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &staff, err
}

func (r *staffRepository) GetByPhone(ctx context.Context, phone string) (*entity.Staff, error) {
	var staff entity.Staff
	err := r.db.WithContext(ctx).First(&staff, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &staff, err
}

func (r *staffRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Staff, int64, error) {
	var staff []entity.Staff
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Staff{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&staff).Error

	return staff, total, err
}

func (r *staffRepository) UpdatePINHash(ctx context.Context, id uuid.UUID, pinHash string) error {
	return r.db.WithContext(ctx).Model(&entity.Staff{}).
		Where("id = ?", id).
		Update("pin_hash", pinHash).Error
}
