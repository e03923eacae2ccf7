package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/internal/domain/enum"
)

// PriceFunc looks up the current price of an item. It returns false for
// items that no longer exist; their lines count as zero sales.
type PriceFunc func(itemID uuid.UUID) (decimal.Decimal, bool)

// Options filters the order stream before bucketing. Start and End are
// inclusive; End is widened to the end of its day.
type Options struct {
	Start  *time.Time
	End    *time.Time
	Status StatusFilter
}

// Aggregate folds an order collection into report rows, one per time bucket,
// most recent bucket first. It is a pure function: the same orders, prices
// and options always produce the same rows.
func Aggregate(orders []entity.Order, price PriceFunc, mode Mode, opts Options) []Row {
	if opts.Status == "" {
		opts.Status = FilterAll
	}

	var end time.Time
	if opts.End != nil {
		end = endOfDay(*opts.End)
	}

	buckets := make(map[string]*Row)
	for i := range orders {
		o := &orders[i]
		if o.Time.IsZero() {
			continue
		}
		if opts.Start != nil && o.Time.Before(*opts.Start) {
			continue
		}
		if opts.End != nil && o.Time.After(end) {
			continue
		}
		if !matches(opts.Status, o.Status) {
			continue
		}

		key := bucketKey(o.Time, mode)
		row, ok := buckets[key]
		if !ok {
			row = &Row{Label: bucketLabel(o.Time, mode), Sales: decimal.Zero}
			buckets[key] = row
		}

		row.Orders++
		row.Items += o.ItemCount()
		row.Sales = row.Sales.Add(o.Total(price))
		switch o.Status {
		case enum.OrderStatusPaid:
			row.Paid++
		case enum.OrderStatusLoan:
			row.Loan++
		default:
			row.Pending++
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	// Keys are fixed width, so lexicographic descending is chronological
	// descending for every mode, including weeks.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, *buckets[k])
	}
	return rows
}

func matches(filter StatusFilter, status enum.OrderStatus) bool {
	switch filter {
	case FilterPaid:
		return status == enum.OrderStatusPaid
	case FilterLoan:
		return status == enum.OrderStatusLoan
	default:
		return true
	}
}

// bucketKey returns a fixed-width sortable key for the order's bucket.
// Week numbers are zero padded here even though the visible label is not.
func bucketKey(t time.Time, mode Mode) string {
	t = t.UTC()
	switch mode {
	case ModeWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case ModeMonthly:
		return t.Format("2006-01")
	case ModeYearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

// bucketLabel returns the user-visible bucket label. Buckets use the
// instant's UTC date component regardless of the timezone the order was
// entered in.
func bucketLabel(t time.Time, mode Mode) string {
	t = t.UTC()
	switch mode {
	case ModeWeekly:
		// ISO-8601: weeks start Monday, week 1 holds the year's first
		// Thursday, so Dec 31 can belong to the next ISO year.
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%d", year, week)
	case ModeMonthly:
		return t.Format("2006-01")
	case ModeYearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
