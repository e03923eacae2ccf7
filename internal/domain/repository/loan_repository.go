package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/pkg/pagination"
)

// LoanRepository defines the interface for the loan ledger
type LoanRepository interface {
	CreateCustomer(ctx context.Context, customer *entity.LoanCustomer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*entity.LoanCustomer, error)
	ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.LoanCustomer, int64, error)
	// AddEntry appends a debt under a customer. It fails with
	// apperror.ErrDuplicateOrderLoan when any customer already holds an
	// entry for the same order.
	AddEntry(ctx context.Context, entry *entity.LoanEntry) error
	// EntryByOrderID searches the whole ledger, not one customer.
	EntryByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.LoanEntry, error)
	ListEntries(ctx context.Context, customerID uuid.UUID) ([]entity.LoanEntry, error)
	TotalFor(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	// OutstandingTotal sums every entry in the ledger.
	OutstandingTotal(ctx context.Context) (decimal.Decimal, error)
}
