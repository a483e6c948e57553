// Package excel encodes workbooks as .xlsx files with excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"spendlog/internal/export"
)

// Writer implements export.WorkbookWriter. The file is assembled entirely in
// memory, so an error never leaves a partial file behind.
type Writer struct{}

func New() Writer { return Writer{} }

func (Writer) WriteWorkbook(ctx context.Context, wb export.Workbook) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range wb.Sheets {
		if i == 0 {
			// Rename the implicit first sheet instead of leaving it empty.
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("name sheet %q: %w", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", sheet.Name, err)
			}
		}

		if err := writeSheet(f, sheet); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet export.Sheet) error {
	for col, name := range sheet.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell for %q: %w", sheet.Name, err)
		}
		if err := f.SetCellValue(sheet.Name, cell, name); err != nil {
			return fmt.Errorf("write header of %q: %w", sheet.Name, err)
		}
	}

	for row, values := range sheet.Rows {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("cell for %q: %w", sheet.Name, err)
			}
			if err := f.SetCellValue(sheet.Name, cell, v); err != nil {
				return fmt.Errorf("write row %d of %q: %w", row+1, sheet.Name, err)
			}
		}
	}

	for col, width := range sheet.Widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("column name for %q: %w", sheet.Name, err)
		}
		if err := f.SetColWidth(sheet.Name, name, name, width); err != nil {
			return fmt.Errorf("set widths of %q: %w", sheet.Name, err)
		}
	}

	return nil
}
