package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldSlotIndex   = "slot_index"
	FieldName        = "name"
	FieldRecipient   = "recipient"
	FieldAmountCents = "amount_cents"
	FieldArtifact    = "artifact"
	FieldSent        = "sent"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentSession  = "session"
	ComponentDispatch = "dispatch"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentMail     = "mail"
	ComponentRender   = "render"
	ComponentBackend  = "backend"
	ComponentTemplate = "template"
)

// Operations defines standard operation names
const (
	OpSubmit   = "submit"
	OpAmend    = "amend"
	OpDispatch = "dispatch"
	OpRender   = "render"
	OpSend     = "send"
	OpCleanup  = "cleanup"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
