package export

import (
	"html/template"
	"strings"

	"github.com/sulayman101/puntrms/internal/domain/report"
)

var printableTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Sales report</title>
<style>
body { font-family: sans-serif; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #444; padding: 4px 8px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
tfoot td { font-weight: bold; }
</style>
</head>
<body>
<h1>Sales report</h1>
<table>
<thead>
<tr><th>Period</th><th>Orders</th><th>Items</th><th>Sales</th><th>Paid</th><th>Loan</th><th>Pending</th></tr>
</thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Label}}</td><td>{{.Orders}}</td><td>{{.Items}}</td><td>{{.Sales}}</td><td>{{.Paid}}</td><td>{{.Loan}}</td><td>{{.Pending}}</td></tr>
{{- end}}
</tbody>
<tfoot>
<tr><td>Total</td><td>{{.Total.Orders}}</td><td>{{.Total.Items}}</td><td>{{.Total.Sales}}</td><td>{{.Total.Paid}}</td><td>{{.Total.Loan}}</td><td>{{.Total.Pending}}</td></tr>
</tfoot>
</table>
</body>
</html>
`))

type printableRow struct {
	Label   string
	Orders  int
	Items   int
	Sales   string
	Paid    int
	Loan    int
	Pending int
}

type printableData struct {
	Rows  []printableRow
	Total printableRow
}

// ToPrintable renders report rows as a standalone printable HTML document
// holding the same cells as the CSV export.
func ToPrintable(rows []report.Row, total report.Row) (string, error) {
	data := printableData{Total: toPrintableRow(total)}
	for _, r := range rows {
		data.Rows = append(data.Rows, toPrintableRow(r))
	}

	var sb strings.Builder
	if err := printableTmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func toPrintableRow(r report.Row) printableRow {
	return printableRow{
		Label:   r.Label,
		Orders:  r.Orders,
		Items:   r.Items,
		Sales:   r.Sales.StringFixed(2),
		Paid:    r.Paid,
		Loan:    r.Loan,
		Pending: r.Pending,
	}
}
