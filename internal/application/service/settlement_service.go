package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/internal/domain/enum"
	"github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/internal/infrastructure/notify"
	"github.com/sulayman101/puntrms/pkg/apperror"
	"go.uber.org/zap"
)

// SettlementService moves orders between settlement statuses and keeps the
// loan ledger consistent with them. Reassignment between any two distinct
// statuses is allowed so a mis-click can be corrected; the ledger's unique
// order constraint is what protects against double-loaning, not the state
// machine.
type SettlementService struct {
	orderRepo repository.OrderRepository
	loanRepo  repository.LoanRepository
	itemRepo  repository.ItemRepository
	notifier  notify.Notifier
	logger    *zap.SugaredLogger
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	orderRepo repository.OrderRepository,
	loanRepo repository.LoanRepository,
	itemRepo repository.ItemRepository,
	notifier notify.Notifier,
	logger *zap.SugaredLogger,
) *SettlementService {
	return &SettlementService{
		orderRepo: orderRepo,
		loanRepo:  loanRepo,
		itemRepo:  itemRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// Actor identifies the staff member performing a settlement
type Actor struct {
	ID   uuid.UUID
	Name string
}

// SettleInput describes one settlement request. From is the status the
// caller last observed; the write is conditional on it so two collectors
// racing on the same order cannot both win.
type SettleInput struct {
	OrderID        uuid.UUID
	From           enum.OrderStatus
	To             enum.OrderStatus
	Actor          Actor
	LoanCustomerID *uuid.UUID
}

// SetStatus applies one settlement transition and returns the updated order.
//
// Moving to loan requires a customer and records the debt: the status write
// and the ledger insert run inside one database transaction. When the ledger
// already holds an entry for the order under the same customer the insert is
// skipped, so retrying the same transition is safe and can never produce a
// second entry. An entry under a different customer fails the transition
// with ErrDuplicateOrderLoan and the status write rolls back.
func (s *SettlementService) SetStatus(ctx context.Context, input *SettleInput) (*entity.Order, error) {
	if !input.From.Valid() || !input.To.Valid() {
		return nil, apperror.NewBadRequestError("Unknown order status")
	}
	if input.From == input.To {
		return nil, apperror.ErrInvalidTransition
	}

	order, err := s.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	// Collector tracks who moved the order out of pending; returning an
	// order to pending clears it.
	collector := input.Actor.Name
	if input.To == enum.OrderStatusPending {
		collector = ""
	}

	if input.To == enum.OrderStatusLoan {
		if err := s.settleLoan(ctx, order, input, collector); err != nil {
			return nil, err
		}
	} else {
		if err := s.orderRepo.UpdateStatusCAS(ctx, input.OrderID, input.From, input.To, collector); err != nil {
			return nil, err
		}
	}

	s.logger.Infow("order settled",
		"order", order.Number,
		"from", input.From,
		"to", input.To,
		"collector", collector,
	)
	s.notifier.OrderChanged(ctx, input.OrderID)

	return s.orderRepo.GetByID(ctx, input.OrderID)
}

func (s *SettlementService) settleLoan(ctx context.Context, order *entity.Order, input *SettleInput, collector string) error {
	if input.LoanCustomerID == nil {
		return apperror.ErrMissingLoanCustomer
	}

	customer, err := s.loanRepo.GetCustomer(ctx, *input.LoanCustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Loan customer")
	}

	// The debt amount is the order's running total at this instant. It is
	// frozen into the entry: later menu price edits change future reports
	// but never an already-recorded loan.
	prices, err := s.itemRepo.PriceMap(ctx)
	if err != nil {
		return err
	}
	amount := order.Total(func(itemID uuid.UUID) (decimal.Decimal, bool) {
		p, ok := prices[itemID]
		return p, ok
	})

	entry := entity.LoanEntry{
		CustomerID: customer.ID,
		OrderID:    order.ID,
		Amount:     amount,
		Date:       order.Time,
		ServedBy:   order.Server.Name,
	}

	if err := s.orderRepo.SettleLoan(ctx, order.ID, input.From, collector, entry); err != nil {
		return err
	}

	s.notifier.LedgerChanged(ctx, customer.ID)
	return nil
}
