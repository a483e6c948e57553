package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"spendlog/internal/export"
	applog "spendlog/internal/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExport streams the spreadsheet report as a download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	report, err := s.exporter.Export(r.Context(), s.session.Ledger.Expenses(), s.session.Catalog.Items())
	if err != nil {
		if errors.Is(err, export.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable,
				"Export feature is currently unavailable. Please try again later.")
			return
		}
		slog.ErrorContext(r.Context(), "Export failed",
			applog.FieldComponent, applog.ComponentExport,
			applog.FieldOperation, applog.OpExport,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Content)))
	_, _ = w.Write(report.Content)
}
