// Package export projects the catalog and the ledger into a two-sheet
// workbook. The actual spreadsheet encoding is an injected capability behind
// the WorkbookWriter port, with an explicit unavailable failure path instead
// of a runtime-checked global.
package export

import (
	"context"
	"errors"
)

// ErrUnavailable reports that no spreadsheet-writing capability is present.
// The caller surfaces it to the user; no file is produced.
var ErrUnavailable = errors.New("spreadsheet export unavailable")

type (
	// Sheet is one tabular page of a workbook. Rows hold cell values as
	// written: strings stay strings, numeric columns stay numeric so the
	// consumer can re-sum and re-sort.
	Sheet struct {
		Name    string
		Columns []string
		Widths  []float64
		Rows    [][]any
	}

	Workbook struct {
		Sheets []Sheet
	}

	// WorkbookWriter encodes a whole workbook in one shot. Implementations
	// must never emit a partial file: either the full byte slice or an error.
	WorkbookWriter interface {
		WriteWorkbook(ctx context.Context, wb Workbook) ([]byte, error)
	}
)

// Unavailable is a WorkbookWriter for deployments without an export
// capability; every call reports ErrUnavailable.
type Unavailable struct{}

func (Unavailable) WriteWorkbook(context.Context, Workbook) ([]byte, error) {
	return nil, ErrUnavailable
}
