package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/enum"
	"github.com/sulayman101/puntrms/internal/domain/report"
	"github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/pkg/export"
)

// ReportService builds sales reports from the order snapshot. Rows are
// derived fresh on every call; nothing here is cached or persisted.
type ReportService struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	loanRepo  repository.LoanRepository
}

// NewReportService creates a new report service
func NewReportService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	loanRepo repository.LoanRepository,
) *ReportService {
	return &ReportService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		loanRepo:  loanRepo,
	}
}

// ReportQuery selects the bucket granularity and the order subset to fold
type ReportQuery struct {
	Mode   report.Mode
	Start  *time.Time
	End    *time.Time
	Status report.StatusFilter
}

// Report is the aggregation result handed to the UI and the exporters.
// Total is computed once here; renderers never re-derive it.
type Report struct {
	Rows  []report.Row `json:"rows"`
	Total report.Row   `json:"total"`
}

// Build aggregates the current order collection into report rows
func (s *ReportService) Build(ctx context.Context, q *ReportQuery) (*Report, error) {
	orders, err := s.orderRepo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	prices, err := s.itemRepo.PriceMap(ctx)
	if err != nil {
		return nil, err
	}

	rows := report.Aggregate(orders, func(itemID uuid.UUID) (decimal.Decimal, bool) {
		p, ok := prices[itemID]
		return p, ok
	}, q.Mode, report.Options{
		Start:  q.Start,
		End:    q.End,
		Status: q.Status,
	})

	return &Report{Rows: rows, Total: report.Total(rows)}, nil
}

// CSV renders the report as CSV text
func (s *ReportService) CSV(ctx context.Context, q *ReportQuery) (string, error) {
	r, err := s.Build(ctx, q)
	if err != nil {
		return "", err
	}
	return export.ToCSV(r.Rows, r.Total)
}

// Printable renders the report as a standalone printable HTML document
func (s *ReportService) Printable(ctx context.Context, q *ReportQuery) (string, error) {
	r, err := s.Build(ctx, q)
	if err != nil {
		return "", err
	}
	return export.ToPrintable(r.Rows, r.Total)
}

// XLSX renders the report as an Excel workbook
func (s *ReportService) XLSX(ctx context.Context, q *ReportQuery) ([]byte, error) {
	r, err := s.Build(ctx, q)
	if err != nil {
		return nil, err
	}
	return export.ToXLSX(r.Rows, r.Total)
}

// DashboardSummary is the at-a-glance view shown on the till home screen
type DashboardSummary struct {
	TodaySales       decimal.Decimal `json:"today_sales"`
	TodayOrders      int             `json:"today_orders"`
	OpenOrders       int64           `json:"open_orders"`
	OutstandingLoans decimal.Decimal `json:"outstanding_loans"`
}

// Summary computes today's sales alongside the open order count and the
// ledger's outstanding total
func (s *ReportService) Summary(ctx context.Context) (*DashboardSummary, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	r, err := s.Build(ctx, &ReportQuery{
		Mode:   report.ModeDaily,
		Start:  &start,
		End:    &now,
		Status: report.FilterAll,
	})
	if err != nil {
		return nil, err
	}

	open, err := s.orderRepo.CountByStatus(ctx, enum.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.loanRepo.OutstandingTotal(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TodaySales:       r.Total.Sales,
		TodayOrders:      r.Total.Orders,
		OpenOrders:       open,
		OutstandingLoans: outstanding,
	}, nil
}
