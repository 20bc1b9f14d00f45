// Package export writes employee records to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/janec/payroll/internal/model"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the employee table.
const SheetName = "Employees"

// builtin number format "0.00"
const numFmtTwoDecimals = 2

var headers = []string{"ID", "Name", "Basic Salary", "Tax", "Net Salary"}

var columnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 8},
	{"B", "B", 30},
	{"C", "E", 16},
}

// WriteXLSX writes records to an .xlsx file at path.
func WriteXLSX(path string, records []model.Employee, currency string) error {
	f, err := build(records, currency)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// EncodeXLSX writes the workbook to w.
func EncodeXLSX(w io.Writer, records []model.Employee, currency string) error {
	f, err := build(records, currency)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// build lays out a header row, one row per record in order and a totals row.
func build(records []model.Employee, currency string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals, Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create total style: %w", err)
	}

	if err := setRow(f, 1, toRow(headers)); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", "E1", headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	basicTotal, taxTotal, netTotal := decimal.Zero, decimal.Zero, decimal.Zero
	row := 2
	for _, e := range records {
		values := []interface{}{
			e.ID,
			e.Name,
			e.BasicSalary.InexactFloat64(),
			e.Tax.InexactFloat64(),
			e.NetSalary.InexactFloat64(),
		}
		if err := setRow(f, row, values); err != nil {
			f.Close()
			return nil, err
		}
		basicTotal = basicTotal.Add(e.BasicSalary)
		taxTotal = taxTotal.Add(e.Tax)
		netTotal = netTotal.Add(e.NetSalary)
		row++
	}
	if row > 2 {
		if err := f.SetCellStyle(SheetName, "C2", fmt.Sprintf("E%d", row-1), moneyStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	totals := []interface{}{
		"Total",
		fmt.Sprintf("%d employees", len(records)),
		basicTotal.InexactFloat64(),
		taxTotal.InexactFloat64(),
		netTotal.InexactFloat64(),
	}
	if err := setRow(f, row, totals); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), totalStyle); err != nil {
		f.Close()
		return nil, err
	}

	if currency != "" {
		// the currency only labels the money columns
		for i, h := range headers[2:] {
			cell, err := excelize.CoordinatesToCellName(i+3, 1)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, fmt.Sprintf("%s (%s)", h, currency)); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	for _, cw := range columnWidths {
		if err := f.SetColWidth(SheetName, cw.from, cw.to, cw.width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return f, nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func toRow(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
