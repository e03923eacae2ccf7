package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/internal/domain/enum"
	"github.com/sulayman101/puntrms/internal/infrastructure/notify"
	"github.com/sulayman101/puntrms/pkg/apperror"
	"go.uber.org/zap"
)

func newSettlementFixture(t *testing.T) (*SettlementService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	svc := NewSettlementService(
		&fakeOrderRepo{store: store},
		&fakeLoanRepo{store: store},
		&fakeItemRepo{store: store},
		notify.NewNoop(),
		zap.NewNop().Sugar(),
	)
	return svc, store
}

func seedOrder(store *fakeStore, status enum.OrderStatus, lines ...entity.OrderLine) *entity.Order {
	waiter := store.addStaff("Asha")
	o := &entity.Order{
		ID:       uuid.New(),
		Number:   "order001",
		ServedBy: waiter.ID,
		Server:   *waiter,
		Time:     time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC),
		Status:   status,
		Lines:    lines,
	}
	for i := range o.Lines {
		o.Lines[i].OrderID = o.ID
	}
	return store.addOrder(o)
}

func TestSetStatusPendingToPaid(t *testing.T) {
	svc, store := newSettlementFixture(t)
	order := seedOrder(store, enum.OrderStatusPending)

	got, err := svc.SetStatus(context.Background(), &SettleInput{
		OrderID: order.ID,
		From:    enum.OrderStatusPending,
		To:      enum.OrderStatusPaid,
		Actor:   Actor{ID: uuid.New(), Name: "Kadija"},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPaid, got.Status)
	assert.Equal(t, "Kadija", got.Collector)
}

func TestSetStatusSameStatusRejected(t *testing.T) {
	svc, store := newSettlementFixture(t)
	order := seedOrder(store, enum.OrderStatusPaid)

	_, err := svc.SetStatus(context.Background(), &SettleInput{
		OrderID: order.ID,
		From:    enum.OrderStatusPaid,
		To:      enum.OrderStatusPaid,
		Actor:   Actor{Name: "Kadija"},
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestSetStatusBackToPendingClearsCollector(t *testing.T) {
	svc, store := newSettlementFixture(t)
	order := seedOrder(store, enum.OrderStatusPending)

	_, err := svc.SetStatus(context.Background(), &SettleInput{
		OrderID: order.ID,
		From:    enum.OrderStatusPending,
		To:      enum.OrderStatusPaid,
		Actor:   Actor{Name: "Kadija"},
	})
	require.NoError(t, err)

	got, err := svc.SetStatus(context.Background(), &SettleInput{
		OrderID: order.ID,
		From:    enum.OrderStatusPaid,
		To:      enum.OrderStatusPending,
		Actor:   Actor{Name: "Kadija"},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPending, got.Status)
	assert.Empty(t, got.Collector)
}

func TestSetStatusLoanRequiresCustomer(t *testing.T) {
	svc, store := newSettlementFixture(t)
	order := seedOrder(store, enum.OrderStatusPending)

	_, err := svc.SetStatus(context.Background(), &SettleInput{
		OrderID: order.ID,
		From:    enum.OrderStatusPending,
		To:      enum.OrderStatusLoan,
		Actor:   Actor{Name: "Kadija"},
	})
	assert.ErrorIs(t, err, apperror.ErrMissingLoanCustomer)

	got, err := (&fakeOrderRepo{store: store}).GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPending, got.Status)
}

func TestSetStatusLoanFreezesAmount(t *testing.T) {
	svc, store := newSettlementFixture(t)
	tea := store.addItem("tea", "30.00", nil)
	order := seedOrder(store, enum.OrderStatusPending, entity.OrderLine{ItemID: tea.ID, Qty: 2})
	customer := store.addCustomer("Mohamed")

	got, err := svc.SetStatus(context.Background(), &SettleInput{
		OrderID:        order.ID,
		From:           enum.OrderStatusPending,
		To:             enum.OrderStatusLoan,
		Actor:          Actor{Name: "Kadija"},
		LoanCustomerID: &customer.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusLoan, got.Status)

	entry := store.entries[order.ID]
	require.NotNil(t, entry)
	assert.True(t, entry.Amount.Equal(decimal.RequireFromString("60.00")), "amount %s", entry.Amount)
	assert.Equal(t, customer.ID, entry.CustomerID)
	assert.Equal(t, "Asha", entry.ServedBy)
	assert.Equal(t, order.Time, entry.Date)

	// A later price change must not touch the recorded debt.
	store.mu.Lock()
	store.items[tea.ID].Price = decimal.RequireFromString("50.00")
	store.mu.Unlock()
	assert.True(t, store.entries[order.ID].Amount.Equal(decimal.RequireFromString("60.00")))
}

func TestSetStatusLoanRetrySameCustomerIsIdempotent(t *testing.T) {
	svc, store := newSettlementFixture(t)
	tea := store.addItem("tea", "30.00", nil)
	order := seedOrder(store, enum.OrderStatusPending, entity.OrderLine{ItemID: tea.ID, Qty: 1})
	customer := store.addCustomer("Mohamed")

	_, err := svc.SetStatus(context.Background(), &SettleInput{
		OrderID:        order.ID,
		From:           enum.OrderStatusPending,
		To:             enum.OrderStatusLoan,
		Actor:          Actor{Name: "Kadija"},
		LoanCustomerID: &customer.ID,
	})
	require.NoError(t, err)
	firstEntry := *store.entries[order.ID]

	// Correct the status back to pending, then loan to the same customer
	// again. The second transition succeeds and the original entry stands.
	_, err = svc.SetStatus(context.Background(), &SettleInput{
		OrderID: order.ID,
		From:    enum.OrderStatusLoan,
		To:      enum.OrderStatusPending,
		Actor:   Actor{Name: "Kadija"},
	})
	require.NoError(t, err)

	got, err := svc.SetStatus(context.Background(), &SettleInput{
		OrderID:        order.ID,
		From:           enum.OrderStatusPending,
		To:             enum.OrderStatusLoan,
		Actor:          Actor{Name: "Hassan"},
		LoanCustomerID: &customer.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusLoan, got.Status)

	require.Len(t, store.entries, 1)
	assert.Equal(t, firstEntry.ID, store.entries[order.ID].ID)
	assert.Equal(t, customer.ID, store.entries[order.ID].CustomerID)
}

func TestSetStatusLoanDifferentCustomerRejected(t *testing.T) {
	svc, store := newSettlementFixture(t)
	tea := store.addItem("tea", "30.00", nil)
	order := seedOrder(store, enum.OrderStatusPending, entity.OrderLine{ItemID: tea.ID, Qty: 1})
	first := store.addCustomer("Mohamed")
	second := store.addCustomer("Ayan")

	_, err := svc.SetStatus(context.Background(), &SettleInput{
		OrderID:        order.ID,
		From:           enum.OrderStatusPending,
		To:             enum.OrderStatusLoan,
		Actor:          Actor{Name: "Kadija"},
		LoanCustomerID: &first.ID,
	})
	require.NoError(t, err)

	// Correct the status back to pending, then try to loan the same order
	// to someone else. The ledger already carries the debt under the first
	// customer, so the transition must fail loudly and roll back.
	_, err = svc.SetStatus(context.Background(), &SettleInput{
		OrderID: order.ID,
		From:    enum.OrderStatusLoan,
		To:      enum.OrderStatusPending,
		Actor:   Actor{Name: "Kadija"},
	})
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), &SettleInput{
		OrderID:        order.ID,
		From:           enum.OrderStatusPending,
		To:             enum.OrderStatusLoan,
		Actor:          Actor{Name: "Kadija"},
		LoanCustomerID: &second.ID,
	})
	assert.ErrorIs(t, err, apperror.ErrDuplicateOrderLoan)

	got, err := (&fakeOrderRepo{store: store}).GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPending, got.Status)

	require.Len(t, store.entries, 1)
	assert.Equal(t, first.ID, store.entries[order.ID].CustomerID)
}

func TestSetStatusConcurrentSettlementOneWinner(t *testing.T) {
	svc, store := newSettlementFixture(t)
	tea := store.addItem("tea", "30.00", nil)
	order := seedOrder(store, enum.OrderStatusPending, entity.OrderLine{ItemID: tea.ID, Qty: 1})
	customer := store.addCustomer("Mohamed")

	inputs := []*SettleInput{
		{
			OrderID: order.ID,
			From:    enum.OrderStatusPending,
			To:      enum.OrderStatusPaid,
			Actor:   Actor{Name: "Kadija"},
		},
		{
			OrderID:        order.ID,
			From:           enum.OrderStatusPending,
			To:             enum.OrderStatusLoan,
			Actor:          Actor{Name: "Hassan"},
			LoanCustomerID: &customer.ID,
		},
	}

	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input *SettleInput) {
			defer wg.Done()
			_, errs[i] = svc.SetStatus(context.Background(), input)
		}(i, input)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, apperror.ErrSettlementConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)
	assert.LessOrEqual(t, len(store.entries), 1)
}

func TestSetStatusUnknownOrder(t *testing.T) {
	svc, _ := newSettlementFixture(t)

	_, err := svc.SetStatus(context.Background(), &SettleInput{
		OrderID: uuid.New(),
		From:    enum.OrderStatusPending,
		To:      enum.OrderStatusPaid,
		Actor:   Actor{Name: "Kadija"},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
