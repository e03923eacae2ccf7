package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	domainRepo "github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/pkg/apperror"
	"github.com/sulayman101/puntrms/pkg/pagination"
	"gorm.io/gorm"
)

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan ledger repository
func NewLoanRepository(db *gorm.DB) domainRepo.LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) CreateCustomer(ctx context.Context, customer *entity.LoanCustomer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *loanRepository) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.LoanCustomer, error) {
	var customer entity.LoanCustomer
	err := r.db.WithContext(ctx).
		Preload("Loans").
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *loanRepository) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.LoanCustomer, int64, error) {
	var customers []entity.LoanCustomer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.LoanCustomer{})
	if search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

func (r *loanRepository) AddEntry(ctx context.Context, entry *entity.LoanEntry) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.ErrDuplicateOrderLoan
	}
	return err
}

func (r *loanRepository) EntryByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.LoanEntry, error) {
	var entry entity.LoanEntry
	err := r.db.WithContext(ctx).First(&entry, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *loanRepository) ListEntries(ctx context.Context, customerID uuid.UUID) ([]entity.LoanEntry, error) {
	var entries []entity.LoanEntry
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&entries).Error
	return entries, err
}

func (r *loanRepository) TotalFor(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	return r.sumAmount(ctx, r.db.WithContext(ctx).Model(&entity.LoanEntry{}).Where("customer_id = ?", customerID))
}

func (r *loanRepository) OutstandingTotal(ctx context.Context) (decimal.Decimal, error) {
	return r.sumAmount(ctx, r.db.WithContext(ctx).Model(&entity.LoanEntry{}))
}

func (r *loanRepository) sumAmount(ctx context.Context, query *gorm.DB) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := query.Select("SUM(amount)").Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}
