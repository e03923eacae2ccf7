// Package export renders report rows for download and printing. Every
// renderer is a pure function of the rows and the already-computed grand
// total; none of them re-derive totals, so an exported file can never
// disagree with the screen it was exported from.
package export

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/sulayman101/puntrms/internal/domain/report"
)

// csvHeader is the column order shared by the CSV and XLSX renderers.
var csvHeader = []string{"Period", "Orders", "Items", "Sales", "Paid", "Loan", "Pending"}

// ToCSV renders report rows as CSV text: header, one line per bucket and a
// trailing Total line. Money is formatted with two decimals.
func ToCSV(rows []report.Row, total report.Row) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, row := range rows {
		if err := w.Write(record(row)); err != nil {
			return "", err
		}
	}
	totalRow := total
	totalRow.Label = "Total"
	if err := w.Write(record(totalRow)); err != nil {
		return "", err
	}

	w.Flush()
	return sb.String(), w.Error()
}

func record(r report.Row) []string {
	return []string{
		r.Label,
		strconv.Itoa(r.Orders),
		strconv.Itoa(r.Items),
		r.Sales.StringFixed(2),
		strconv.Itoa(r.Paid),
		strconv.Itoa(r.Loan),
		strconv.Itoa(r.Pending),
	}
}
