package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/pkg/pagination"
)

// StaffRepository defines the interface for staff data operations
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Staff, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Staff, int64, error)
	UpdatePINHash(ctx context.Context, id uuid.UUID, pinHash string) error
}
