// Package export renders transaction lists as XLSX workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fintrack/internal/core"
)

const sheetName = "Transactions"

var headers = []string{"Date", "Time", "Type", "Category", "Amount", "Notes"}

// TransactionsXLSX returns an XLSX workbook with one row per transaction,
// in the order given.
func TransactionsXLSX(txs []core.Transaction) ([]byte, error) {
	f := excelize.NewFile()

	if index, _ := f.GetSheetIndex(sheetName); index == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet so the workbook only carries ours.
	if sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	row := 2
	for _, tx := range txs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}

		write(1, tx.Date)
		write(2, tx.Time)
		write(3, string(tx.Type))
		write(4, tx.DisplayCategory())
		write(5, tx.Amount.String())
		write(6, tx.Notes)

		row++
	}

	_ = f.SetColWidth(sheetName, "A", "A", 12) // date
	_ = f.SetColWidth(sheetName, "B", "B", 8)  // time
	_ = f.SetColWidth(sheetName, "C", "C", 10) // type
	_ = f.SetColWidth(sheetName, "D", "D", 22) // category
	_ = f.SetColWidth(sheetName, "E", "E", 14) // amount
	_ = f.SetColWidth(sheetName, "F", "F", 48) // notes

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
