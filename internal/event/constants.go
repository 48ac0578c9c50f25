package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Log message constants
const (
	LogMsgHandlerPanicked = "Event handler panicked"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
	ErrFmtHandlerPanic       = "handler panicked: %v"
)

// Log field keys
const (
	LogFieldEventType = "event_type"
	LogFieldPanic     = "panic"
)
