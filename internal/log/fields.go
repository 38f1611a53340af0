package log

// Common field names for structured logging.
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldUserAgent     = "user_agent"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldUser          = "user"
	FieldCurrency      = "currency"
	FieldTransactionID = "transaction_id"
	FieldAmount        = "amount"
	FieldDate          = "date"
	FieldObject        = "object"
)

// Components defines standard component names.
const (
	ComponentApp         = "app"
	ComponentHTTP        = "http"
	ComponentAccount     = "account"
	ComponentTransaction = "transaction"
	ComponentStore       = "store"
	ComponentEvents      = "events"
	ComponentRateLimit   = "rate_limit"
	ComponentTrace       = "trace"
)

// Operations defines standard operation names.
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpDelete   = "delete"
	OpPublish  = "publish"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
