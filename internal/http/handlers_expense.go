package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"spendlog/internal/core"
)

type expenseRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		expenses := s.session.Ledger.Expenses()
		views := make([]expenseView, 0, len(expenses))
		for _, e := range expenses {
			views = append(views, toExpenseView(e))
		}
		writeJSON(w, http.StatusOK, views)

	case http.MethodPost:
		var req expenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		expense, err := s.session.Ledger.AddExpense(sanitizeInput(req.ItemID), req.Quantity)
		switch {
		case errors.Is(err, core.ErrUnknownItem):
			writeError(w, http.StatusUnprocessableEntity, "item not in catalog")
			return
		case errors.Is(err, core.ErrInvalidQuantity):
			writeError(w, http.StatusUnprocessableEntity, "quantity must be at least 1")
			return
		case err != nil:
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, toExpenseView(expense))

	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// handleClearExpenses is the confirmation gate in front of the irreversible
// ledger clear: the request must carry confirm=yes.
func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req struct {
		Confirm string `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Confirm != "yes" {
		writeError(w, http.StatusBadRequest, "clearing the ledger requires confirm=yes")
		return
	}

	s.session.Ledger.Clear()
	w.WriteHeader(http.StatusNoContent)
}
