package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spendlog/internal/core"
	applog "spendlog/internal/log"
)

// Sheet and column layout of the report.
const (
	ExpensesSheetName = "Expenses"
	ItemsSheetName    = "Curated Item List"
)

// Clock provides the current time for the report filename.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Report is a fully rendered spreadsheet ready for download.
type Report struct {
	Filename string
	Content  []byte
}

// Service turns ledger and catalog state into a downloadable report through
// the injected WorkbookWriter.
type Service struct {
	writer WorkbookWriter
	clock  Clock
}

func NewService(writer WorkbookWriter) *Service {
	return &Service{writer: writer, clock: systemClock{}}
}

// NewServiceWithClock builds a Service with a custom time source, for tests.
func NewServiceWithClock(writer WorkbookWriter, clock Clock) *Service {
	return &Service{writer: writer, clock: clock}
}

// FormatDate renders a date as two-digit day, abbreviated month, two-digit
// year: "25 Jul 24".
func FormatDate(t time.Time) string {
	return t.Format("02 Jan 06")
}

// DayOfWeek renders the full weekday name: "Thursday".
func DayOfWeek(t time.Time) string {
	return t.Weekday().String()
}

// BuildWorkbook projects the two collections into the report's tabular form.
// The Expenses rows follow the ledger's current order; the total cost comes
// from the snapshot fields, never from a catalog re-lookup.
func BuildWorkbook(expenses []core.Expense, items []core.CuratedItem) Workbook {
	expenseRows := make([][]any, 0, len(expenses))
	for _, e := range expenses {
		expenseRows = append(expenseRows, []any{
			FormatDate(e.Date),
			DayOfWeek(e.Date),
			e.ItemName,
			e.ItemPrice.Float(),
			e.Quantity,
			e.Total().Float(),
		})
	}

	itemRows := make([][]any, 0, len(items))
	for _, it := range items {
		itemRows = append(itemRows, []any{it.Name, it.Price.Float()})
	}

	return Workbook{Sheets: []Sheet{
		{
			Name:    ExpensesSheetName,
			Columns: []string{"Date", "Day", "Item", "Price per Item", "Quantity", "Total Cost"},
			Widths:  []float64{12, 12, 25, 15, 10, 12},
			Rows:    expenseRows,
		},
		{
			Name:    ItemsSheetName,
			Columns: []string{"Item Name", "Price"},
			Widths:  []float64{25, 12},
			Rows:    itemRows,
		},
	}}
}

// Export renders the report. On failure nothing is written anywhere, so a
// corrupt or partial file can never reach the user.
func (s *Service) Export(ctx context.Context, expenses []core.Expense, items []core.CuratedItem) (Report, error) {
	wb := BuildWorkbook(expenses, items)

	content, err := s.writer.WriteWorkbook(ctx, wb)
	if err != nil {
		return Report{}, fmt.Errorf("write workbook: %w", err)
	}

	filename := fmt.Sprintf("Spending_Report_%s.xlsx", s.clock.Now().Format("2006-01-02"))
	slog.Info("Report exported",
		applog.FieldComponent, applog.ComponentExport,
		applog.FieldOperation, applog.OpExport,
		applog.FieldFilename, filename,
		applog.FieldCount, len(expenses))
	return Report{Filename: filename, Content: content}, nil
}
