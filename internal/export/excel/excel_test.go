package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"spendlog/internal/core"
	"spendlog/internal/export"
)

func TestWriteWorkbookRoundTrip(t *testing.T) {
	expenses := []core.Expense{{
		ID:        "e1",
		Date:      time.Date(2024, 7, 25, 14, 30, 0, 0, time.UTC),
		ItemID:    "i1",
		ItemName:  "Coffee",
		ItemPrice: core.Money{Cents: 350},
		Quantity:  2,
	}}
	items := []core.CuratedItem{{ID: "i1", Name: "Coffee", Price: core.Money{Cents: 350}}}

	content, err := New().WriteWorkbook(context.Background(), export.BuildWorkbook(expenses, items))
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != "Expenses" || got[1] != "Curated Item List" {
		t.Fatalf("sheets = %v", got)
	}

	cells := map[string]string{
		"A1": "Date",
		"F1": "Total Cost",
		"A2": "25 Jul 24",
		"B2": "Thursday",
		"C2": "Coffee",
		"D2": "3.5",
		"E2": "2",
		"F2": "7",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue("Expenses", cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("cell %s = %q, want %q", cell, got, want)
		}
	}

	// Numeric cells are stored as numbers, not strings.
	for _, cell := range []string{"D2", "E2", "F2"} {
		typ, err := f.GetCellType("Expenses", cell)
		if err != nil {
			t.Fatalf("cell type %s: %v", cell, err)
		}
		if typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString {
			t.Fatalf("cell %s stored as string", cell)
		}
	}

	name, err := f.GetCellValue("Curated Item List", "A2")
	if err != nil || name != "Coffee" {
		t.Fatalf("item sheet A2 = %q, %v", name, err)
	}
}

func TestWriteWorkbookHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().WriteWorkbook(ctx, export.BuildWorkbook(nil, nil)); err == nil {
		t.Fatalf("expected context error")
	}
}
