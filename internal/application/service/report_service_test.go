package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/internal/domain/enum"
	"github.com/sulayman101/puntrms/internal/domain/report"
	"github.com/sulayman101/puntrms/internal/infrastructure/notify"
	"go.uber.org/zap"
)

func newReportFixture(t *testing.T) (*ReportService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	svc := NewReportService(
		&fakeOrderRepo{store: store},
		&fakeItemRepo{store: store},
		&fakeLoanRepo{store: store},
	)
	return svc, store
}

func seedReportOrders(store *fakeStore) {
	waiter := store.addStaff("Asha")
	tea := store.addItem("tea", "30.00", nil)

	add := func(t time.Time, status enum.OrderStatus, qty int) {
		store.addOrder(&entity.Order{
			ServedBy: waiter.ID,
			Server:   *waiter,
			Time:     t,
			Status:   status,
			Lines:    []entity.OrderLine{{ItemID: tea.ID, Qty: qty}},
		})
	}

	add(time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC), enum.OrderStatusPaid, 2)
	add(time.Date(2025, 3, 4, 13, 0, 0, 0, time.UTC), enum.OrderStatusLoan, 1)
	add(time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC), enum.OrderStatusPending, 3)
}

func TestReportBuildSharesTotalWithExports(t *testing.T) {
	svc, store := newReportFixture(t)
	seedReportOrders(store)

	q := &ReportQuery{Mode: report.ModeDaily, Status: report.FilterAll}

	r, err := svc.Build(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, r.Rows, 2)
	assert.Equal(t, 3, r.Total.Orders)
	assert.True(t, r.Total.Sales.Equal(decimal.RequireFromString("180.00")), "total %s", r.Total.Sales)

	csvText, err := svc.CSV(context.Background(), q)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	assert.Equal(t, "Total,3,6,180.00,1,1,1", lines[len(lines)-1])

	html, err := svc.Printable(context.Background(), q)
	require.NoError(t, err)
	assert.Contains(t, html, "<td>180.00</td>")
}

func TestReportBuildAppliesFilters(t *testing.T) {
	svc, store := newReportFixture(t)
	seedReportOrders(store)

	r, err := svc.Build(context.Background(), &ReportQuery{
		Mode:   report.ModeDaily,
		Status: report.FilterPaid,
	})
	require.NoError(t, err)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, 1, r.Total.Orders)
	assert.True(t, r.Total.Sales.Equal(decimal.RequireFromString("60.00")))
}

func TestReportSummary(t *testing.T) {
	svc, store := newReportFixture(t)
	waiter := store.addStaff("Asha")
	tea := store.addItem("tea", "30.00", nil)

	now := time.Now().UTC()
	store.addOrder(&entity.Order{
		ServedBy: waiter.ID,
		Server:   *waiter,
		Time:     now,
		Status:   enum.OrderStatusPending,
		Lines:    []entity.OrderLine{{ItemID: tea.ID, Qty: 2}},
	})
	store.addOrder(&entity.Order{
		ServedBy: waiter.ID,
		Server:   *waiter,
		Time:     now.AddDate(0, 0, -3),
		Status:   enum.OrderStatusPaid,
		Lines:    []entity.OrderLine{{ItemID: tea.ID, Qty: 1}},
	})

	settlement := NewSettlementService(
		&fakeOrderRepo{store: store},
		&fakeLoanRepo{store: store},
		&fakeItemRepo{store: store},
		notify.NewNoop(),
		zap.NewNop().Sugar(),
	)
	customer := store.addCustomer("Mohamed")
	loaned := store.addOrder(&entity.Order{
		ServedBy: waiter.ID,
		Server:   *waiter,
		Time:     now.AddDate(0, 0, -1),
		Status:   enum.OrderStatusPending,
		Lines:    []entity.OrderLine{{ItemID: tea.ID, Qty: 4}},
	})
	_, err := settlement.SetStatus(context.Background(), &SettleInput{
		OrderID:        loaned.ID,
		From:           enum.OrderStatusPending,
		To:             enum.OrderStatusLoan,
		Actor:          Actor{Name: "Kadija"},
		LoanCustomerID: &customer.ID,
	})
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TodayOrders)
	assert.True(t, summary.TodaySales.Equal(decimal.RequireFromString("60.00")))
	assert.Equal(t, int64(1), summary.OpenOrders)
	assert.True(t, summary.OutstandingLoans.Equal(decimal.RequireFromString("120.00")))
}
