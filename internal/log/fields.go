package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldTool      = "tool"
	FieldPrompt    = "prompt"
	FieldResource  = "resource"
	FieldOperation = "operation"
	FieldDuration  = "duration_ms"
	FieldSuccess   = "success"
	FieldError     = "error"
	FieldExpenseID = "expense_id"
	FieldDate      = "date"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldDBPath    = "db_path"
	FieldTransport = "transport"
	FieldPort      = "port"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentServer   = "server"
	ComponentStorage  = "storage"
	ComponentTaxonomy = "taxonomy"
	ComponentReport   = "report"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
