package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spendlog/internal/export"
	exportmem "spendlog/internal/export/memory"
	"spendlog/internal/services"
	"spendlog/internal/store"
)

func newTestServer(t *testing.T, writer export.WorkbookWriter) *Server {
	t.Helper()
	session := services.NewSession(store.NewSlots(store.NewMemory()))
	if writer == nil {
		writer = exportmem.New()
	}
	srv := NewServer(":0", session, export.NewService(writer))
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func createItem(t *testing.T, srv *Server, name, price string) itemView {
	t.Helper()
	rr := do(t, srv, http.MethodPost, "/api/items", `{"name":"`+name+`","price":"`+price+`"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create item status = %d, body %s", rr.Code, rr.Body.String())
	}
	var item itemView
	if err := json.Unmarshal(rr.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	return item
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	rr := do(t, srv, http.MethodGet, "/", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("index status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Spending Log") {
		t.Fatalf("index body missing heading")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := do(t, srv, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rr.Code)
		}
	}

	if rr := do(t, srv, http.MethodGet, "/nope", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown path status = %d", rr.Code)
	}
}

func TestItemLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	item := createItem(t, srv, "Coffee", "3.50")
	if item.Price != "3.50" || item.PriceCents != 350 {
		t.Fatalf("unexpected item: %+v", item)
	}

	// Invalid payloads are declined without mutation.
	for _, body := range []string{
		`{"name":"","price":"1.00"}`,
		`{"name":"x","price":"-1"}`,
		`{"name":"x","price":"abc"}`,
	} {
		if rr := do(t, srv, http.MethodPost, "/api/items", body); rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %s: status = %d", body, rr.Code)
		}
	}
	if rr := do(t, srv, http.MethodPost, "/api/items", `{bad json`); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad json status = %d", rr.Code)
	}

	var items []itemView
	rr := do(t, srv, http.MethodGet, "/api/items", "")
	if err := json.Unmarshal(rr.Body.Bytes(), &items); err != nil || len(items) != 1 {
		t.Fatalf("list: %v %v", items, err)
	}

	rr = do(t, srv, http.MethodPut, "/api/items/"+item.ID, `{"name":"Espresso","price":"2.80"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("update status = %d", rr.Code)
	}
	var updated itemView
	_ = json.Unmarshal(rr.Body.Bytes(), &updated)
	if updated.Name != "Espresso" || updated.PriceCents != 280 || updated.ID != item.ID {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	// Unknown id update and delete are no-ops.
	if rr := do(t, srv, http.MethodPut, "/api/items/missing", `{"name":"X","price":"1"}`); rr.Code != http.StatusNoContent {
		t.Fatalf("no-op update status = %d", rr.Code)
	}
	if rr := do(t, srv, http.MethodDelete, "/api/items/missing", ""); rr.Code != http.StatusNoContent {
		t.Fatalf("no-op delete status = %d", rr.Code)
	}

	if rr := do(t, srv, http.MethodDelete, "/api/items/"+item.ID, ""); rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	rr = do(t, srv, http.MethodGet, "/api/items", "")
	items = nil
	_ = json.Unmarshal(rr.Body.Bytes(), &items)
	if len(items) != 0 {
		t.Fatalf("catalog not empty after delete: %+v", items)
	}
}

func TestExpenseLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)
	item := createItem(t, srv, "Coffee", "3.50")

	rr := do(t, srv, http.MethodPost, "/api/expenses", `{"item_id":"`+item.ID+`","quantity":2}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create expense status = %d, body %s", rr.Code, rr.Body.String())
	}
	var exp expenseView
	_ = json.Unmarshal(rr.Body.Bytes(), &exp)
	if exp.ItemName != "Coffee" || exp.ItemPriceCents != 350 || exp.Quantity != 2 || exp.TotalCents != 700 {
		t.Fatalf("unexpected expense: %+v", exp)
	}

	// Unknown item and bad quantity decline without mutation.
	if rr := do(t, srv, http.MethodPost, "/api/expenses", `{"item_id":"missing","quantity":1}`); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown item status = %d", rr.Code)
	}
	if rr := do(t, srv, http.MethodPost, "/api/expenses", `{"item_id":"`+item.ID+`","quantity":0}`); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("zero quantity status = %d", rr.Code)
	}

	var list []expenseView
	rr = do(t, srv, http.MethodGet, "/api/expenses", "")
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("list: %v %v", list, err)
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	srv := newTestServer(t, nil)
	item := createItem(t, srv, "Coffee", "3.50")
	do(t, srv, http.MethodPost, "/api/expenses", `{"item_id":"`+item.ID+`","quantity":1}`)

	if rr := do(t, srv, http.MethodPost, "/api/expenses/clear", `{}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed clear status = %d", rr.Code)
	}
	var list []expenseView
	rr := do(t, srv, http.MethodGet, "/api/expenses", "")
	_ = json.Unmarshal(rr.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Fatalf("ledger mutated by unconfirmed clear: %+v", list)
	}

	if rr := do(t, srv, http.MethodPost, "/api/expenses/clear", `{"confirm":"yes"}`); rr.Code != http.StatusNoContent {
		t.Fatalf("confirmed clear status = %d", rr.Code)
	}
	rr = do(t, srv, http.MethodGet, "/api/expenses", "")
	list = nil
	_ = json.Unmarshal(rr.Body.Bytes(), &list)
	if len(list) != 0 {
		t.Fatalf("ledger not cleared: %+v", list)
	}
}

func TestExportDownload(t *testing.T) {
	srv := newTestServer(t, nil)
	item := createItem(t, srv, "Coffee", "3.50")
	do(t, srv, http.MethodPost, "/api/expenses", `{"item_id":"`+item.ID+`","quantity":2}`)

	rr := do(t, srv, http.MethodGet, "/export", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("export status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Fatalf("content type = %q", ct)
	}
	cd := rr.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, `attachment; filename="Spending_Report_`) || !strings.HasSuffix(cd, `.xlsx"`) {
		t.Fatalf("content disposition = %q", cd)
	}
	if rr.Body.Len() == 0 {
		t.Fatalf("empty export body")
	}
}

func TestExportUnavailable(t *testing.T) {
	srv := newTestServer(t, exportmem.NewUnavailable())

	rr := do(t, srv, http.MethodGet, "/export", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "unavailable") {
		t.Fatalf("missing user-facing message: %s", rr.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	cases := []struct{ method, path string }{
		{http.MethodDelete, "/api/items"},
		{http.MethodPost, "/api/items/some-id"},
		{http.MethodPut, "/api/expenses"},
		{http.MethodGet, "/api/expenses/clear"},
		{http.MethodPost, "/export"},
	}
	for _, tc := range cases {
		if rr := do(t, srv, tc.method, tc.path, ""); rr.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: status = %d", tc.method, tc.path, rr.Code)
		}
	}
}
