package report

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Mode selects the reporting bucket size.
type Mode string

const (
	ModeDaily   Mode = "daily"
	ModeWeekly  Mode = "weekly"
	ModeMonthly Mode = "monthly"
	ModeYearly  Mode = "yearly"
)

// ParseMode parses a bucket mode. An empty string defaults to daily.
func ParseMode(v string) (Mode, error) {
	switch Mode(v) {
	case "":
		return ModeDaily, nil
	case ModeDaily, ModeWeekly, ModeMonthly, ModeYearly:
		return Mode(v), nil
	}
	return "", fmt.Errorf("unknown report mode %q", v)
}

// StatusFilter restricts which orders are folded into the report.
// A specific filter excludes pending orders; FilterAll includes them.
type StatusFilter string

const (
	FilterAll  StatusFilter = "all"
	FilterPaid StatusFilter = "paid"
	FilterLoan StatusFilter = "loan"
)

// ParseStatusFilter parses a status filter. An empty string defaults to all.
func ParseStatusFilter(v string) (StatusFilter, error) {
	switch StatusFilter(v) {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPaid, FilterLoan:
		return StatusFilter(v), nil
	}
	return "", fmt.Errorf("unknown status filter %q", v)
}

// Row is one reporting bucket. Paid+Loan+Pending always equals Orders.
// Rows are derived on every query and never persisted.
type Row struct {
	Label   string          `json:"label"`
	Orders  int             `json:"orders_count"`
	Items   int             `json:"items_count"`
	Sales   decimal.Decimal `json:"sales"`
	Paid    int             `json:"paid"`
	Loan    int             `json:"loan"`
	Pending int             `json:"pending"`
}

// Total folds rows into a grand-total row. Renderers must be handed this
// value rather than re-deriving their own, so the exported total always
// matches the on-screen one.
func Total(rows []Row) Row {
	total := Row{Label: "Total", Sales: decimal.Zero}
	for _, r := range rows {
		total.Orders += r.Orders
		total.Items += r.Items
		total.Sales = total.Sales.Add(r.Sales)
		total.Paid += r.Paid
		total.Loan += r.Loan
		total.Pending += r.Pending
	}
	return total
}
