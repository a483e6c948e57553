package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldKey        = "key"
	FieldBackend    = "backend"
	FieldItemID     = "item_id"
	FieldItemName   = "item_name"
	FieldExpenseID  = "expense_id"
	FieldQuantity   = "quantity"
	FieldPriceCents = "price_cents"
	FieldFilename   = "filename"
	FieldCount      = "count"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentCatalog = "catalog"
	ComponentLedger  = "ledger"
	ComponentStore   = "store"
	ComponentExport  = "export"
)

// Operations defines standard operation names.
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpClear    = "clear"
	OpExport   = "export"
	OpLoad     = "load"
	OpSave     = "save"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
