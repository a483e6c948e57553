package http

import (
	"encoding/json"
	"net/http"
	"time"

	"spendlog/internal/core"
)

// View DTOs. Prices carry both the cent count and a two-decimal display
// string so clients never re-derive formatting.
type (
	itemView struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Price      string `json:"price"`
		PriceCents int64  `json:"price_cents"`
	}

	expenseView struct {
		ID             string `json:"id"`
		Date           string `json:"date"`
		ItemID         string `json:"item_id"`
		ItemName       string `json:"item_name"`
		ItemPrice      string `json:"item_price"`
		ItemPriceCents int64  `json:"item_price_cents"`
		Quantity       int64  `json:"quantity"`
		Total          string `json:"total"`
		TotalCents     int64  `json:"total_cents"`
	}
)

func toItemView(it core.CuratedItem) itemView {
	return itemView{
		ID:         it.ID,
		Name:       it.Name,
		Price:      it.Price.String(),
		PriceCents: it.Price.Cents,
	}
}

func toExpenseView(e core.Expense) expenseView {
	return expenseView{
		ID:             e.ID,
		Date:           e.Date.Format(time.RFC3339),
		ItemID:         e.ItemID,
		ItemName:       e.ItemName,
		ItemPrice:      e.ItemPrice.String(),
		ItemPriceCents: e.ItemPrice.Cents,
		Quantity:       e.Quantity,
		Total:          e.Total().String(),
		TotalCents:     e.Total().Cents,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleIndex renders the ledger table page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	if s.templates == nil {
		http.Error(w, "templates unavailable", http.StatusInternalServerError)
		return
	}

	expenses := s.session.Ledger.Expenses()
	views := make([]expenseView, 0, len(expenses))
	var totalCents int64
	for _, e := range expenses {
		views = append(views, toExpenseView(e))
		totalCents += e.Total().Cents
	}

	items := s.session.Catalog.Items()
	itemViews := make([]itemView, 0, len(items))
	for _, it := range items {
		itemViews = append(itemViews, toItemView(it))
	}

	data := struct {
		Expenses []expenseView
		Items    []itemView
		Total    string
	}{
		Expenses: views,
		Items:    itemViews,
		Total:    core.Money{Cents: totalCents}.String(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]string{
		"templates": "ok",
		"session":   "ok",
	}

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}
	if s.session == nil {
		checks["session"] = "failed: session not configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}
