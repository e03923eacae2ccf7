package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/internal/infrastructure/notify"
	"github.com/sulayman101/puntrms/pkg/apperror"
	"github.com/sulayman101/puntrms/pkg/pagination"
)

// LoanService manages loan customers and their ledger entries. Entries are
// append-only: there is no forgive or edit operation.
type LoanService struct {
	loanRepo repository.LoanRepository
	notifier notify.Notifier
}

// NewLoanService creates a new loan service
func NewLoanService(loanRepo repository.LoanRepository, notifier notify.Notifier) *LoanService {
	return &LoanService{
		loanRepo: loanRepo,
		notifier: notifier,
	}
}

// CreateCustomer registers a new loan customer
func (s *LoanService) CreateCustomer(ctx context.Context, name, phone string) (*entity.LoanCustomer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Name is required"},
		})
	}

	customer := &entity.LoanCustomer{
		Name:  name,
		Phone: strings.TrimSpace(phone),
	}
	if err := s.loanRepo.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer returns a customer together with their entries and total debt
func (s *LoanService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.LoanCustomer, decimal.Decimal, error) {
	customer, err := s.loanRepo.GetCustomer(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if customer == nil {
		return nil, decimal.Zero, apperror.NewNotFoundError("Loan customer")
	}

	total, err := s.loanRepo.TotalFor(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return customer, total, nil
}

// ListCustomers lists loan customers with optional name/phone search
func (s *LoanService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.LoanCustomer], error) {
	customers, total, err := s.loanRepo.ListCustomers(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// AddEntry appends a debt directly to the ledger. Settlement normally does
// this through its own transaction; this path exists for bookkeeping
// corrections and is guarded by the same one-entry-per-order constraint.
func (s *LoanService) AddEntry(ctx context.Context, customerID, orderID uuid.UUID, amount decimal.Decimal, date time.Time, servedBy string) (*entity.LoanEntry, error) {
	customer, err := s.loanRepo.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Loan customer")
	}

	if existing, err := s.loanRepo.EntryByOrderID(ctx, orderID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperror.ErrDuplicateOrderLoan
	}

	entry := &entity.LoanEntry{
		CustomerID: customerID,
		OrderID:    orderID,
		Amount:     amount,
		Date:       date,
		ServedBy:   servedBy,
	}
	if err := s.loanRepo.AddEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.notifier.LedgerChanged(ctx, customerID)
	return entry, nil
}

// ListEntries returns a customer's entries, most recent debt first
func (s *LoanService) ListEntries(ctx context.Context, customerID uuid.UUID) ([]entity.LoanEntry, error) {
	entries, err := s.loanRepo.ListEntries(ctx, customerID)
	if err != nil {
		return nil, err
	}

	// Storage order is arbitrary; presentation sorts by date.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

// TotalFor returns the sum of a customer's entry amounts
func (s *LoanService) TotalFor(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	return s.loanRepo.TotalFor(ctx, customerID)
}
