package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"fintrack/internal/core"
)

func TestTransactionsXLSX(t *testing.T) {
	txs := []core.Transaction{
		{ID: "1", Date: "2024-03-15", Time: "12:30", Type: core.Expense, Category: "Food", Amount: core.AmountFromString("250"), Notes: "lunch"},
		{ID: "2", Date: "2024-03-01", Type: core.Income, Category: "", Amount: core.AmountFromString("1000")},
	}

	data, err := TransactionsXLSX(txs)
	if err != nil {
		t.Fatalf("TransactionsXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header plus two records", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][4] != "Amount" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][3] != "Food" {
		t.Errorf("first record category = %q, want %q", rows[1][3], "Food")
	}
	// Empty category folds into the display label.
	if rows[2][3] != core.OtherCategory {
		t.Errorf("second record category = %q, want %q", rows[2][3], core.OtherCategory)
	}
}

func TestTransactionsXLSXEmpty(t *testing.T) {
	data, err := TransactionsXLSX(nil)
	if err != nil {
		t.Fatalf("TransactionsXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
}
