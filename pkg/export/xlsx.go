package export

import (
	"fmt"

	"github.com/sulayman101/puntrms/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Report"

// ToXLSX renders report rows as an Excel workbook with the same columns as
// the CSV export. Sales cells carry the decimal value, not a string.
func ToXLSX(rows []report.Row, total report.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, name := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, name); err != nil {
			return nil, err
		}
	}

	totalRow := total
	totalRow.Label = "Total"
	all := append(append([]report.Row{}, rows...), totalRow)
	for i, row := range all {
		sales, _ := row.Sales.Round(2).Float64()
		values := []interface{}{row.Label, row.Orders, row.Items, sales, row.Paid, row.Loan, row.Pending}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
