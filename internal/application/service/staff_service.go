package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/pkg/apperror"
	"github.com/sulayman101/puntrms/pkg/pagination"
	"golang.org/x/crypto/bcrypt"
)

// StaffService manages till accounts
type StaffService struct {
	staffRepo repository.StaffRepository
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo repository.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

// CreateStaffInput represents the create staff input
type CreateStaffInput struct {
	Name  string
	Phone string
	PIN   string
	Role  string
}

var validRoles = map[string]bool{
	entity.RoleAdmin:     true,
	entity.RoleWaiter:    true,
	entity.RoleCollector: true,
}

// CreateStaff registers a new staff member with a hashed PIN
func (s *StaffService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*entity.Staff, error) {
	var fieldErrors []apperror.FieldError

	name := strings.TrimSpace(input.Name)
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "Phone is required"})
	}
	if !validPIN(input.PIN) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "pin", Message: "PIN must be 4 to 6 digits"})
	}
	role := input.Role
	if role == "" {
		role = entity.RoleWaiter
	}
	if !validRoles[role] {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "role", Message: "Role must be admin, waiter or collector"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.staffRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	staff := &entity.Staff{
		Name:    name,
		Phone:   phone,
		PINHash: string(hash),
		Role:    role,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// GetStaff retrieves a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}
	return staff, nil
}

// ListStaff lists staff members with pagination
func (s *StaffService) ListStaff(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Staff], error) {
	staff, total, err := s.staffRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(staff, pag), nil
}

// ResetPIN replaces a staff member's PIN. Only admins reach this through
// the API.
func (s *StaffService) ResetPIN(ctx context.Context, id uuid.UUID, newPIN string) error {
	if !validPIN(newPIN) {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "pin", Message: "PIN must be 4 to 6 digits"},
		})
	}

	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if staff == nil {
		return apperror.NewNotFoundError("Staff")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.staffRepo.UpdatePINHash(ctx, id, string(hash))
}

func validPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
