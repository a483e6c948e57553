package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"spendlog/internal/core"
)

type itemRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items := s.session.Catalog.Items()
		views := make([]itemView, 0, len(items))
		for _, it := range items {
			views = append(views, toItemView(it))
		}
		writeJSON(w, http.StatusOK, views)

	case http.MethodPost:
		req, price, ok := s.parseItemRequest(w, r)
		if !ok {
			return
		}
		item, err := s.session.Catalog.AddItem(req.Name, price)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, toItemView(item))

	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleItemByID(w http.ResponseWriter, r *http.Request) {
	id := sanitizeInput(strings.TrimPrefix(r.URL.Path, "/api/items/"))
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		req, price, ok := s.parseItemRequest(w, r)
		if !ok {
			return
		}
		if err := s.session.Catalog.UpdateItem(id, req.Name, price); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		// Unknown ids are a no-op; respond with current state either way.
		if item, found := s.session.Catalog.Find(id); found {
			writeJSON(w, http.StatusOK, toItemView(item))
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case http.MethodDelete:
		s.session.Catalog.DeleteItem(id)
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, "PUT, DELETE")
	}
}

// parseItemRequest decodes and validates the shared add/update payload. On
// failure it writes the error response and returns ok=false.
func (s *Server) parseItemRequest(w http.ResponseWriter, r *http.Request) (itemRequest, core.Money, bool) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return itemRequest{}, core.Money{}, false
	}
	req.Name = sanitizeInput(req.Name)

	cents, err := core.ParseDecimalToCents(req.Price)
	if err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			writeError(w, http.StatusUnprocessableEntity, "invalid price")
		} else {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		}
		return itemRequest{}, core.Money{}, false
	}
	return req, core.Money{Cents: cents}, true
}
