package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnavailableError   = "Garden is not running. Please try again later."
	ErrMsgInvalidPosition    = "That position is outside the garden"
	ErrMsgCellOccupied       = "Something is already growing there"
	ErrMsgCellEmpty          = "Nothing is planted there"
	ErrMsgSoilUnsuitable     = "Nothing grows in that soil"
	ErrMsgNotHarvestable     = "That plant is not fully grown yet"
	ErrMsgNotWithered        = "Only withered plants can be cleared"
	ErrMsgNotWaiting         = "That plant does not need water right now"
	ErrMsgNoPlantDefinitions = "No seeds are available"
	ErrMsgOnCooldown         = "Slow down a little. Try again in a moment"
	ErrMsgUnknownEventType   = "Unknown event type: %s"
	ErrMsgNegativeLimit      = "limit must not be negative"
	ErrMsgSaveFailed         = "Could not save the garden"
)

// Success messages
const (
	MsgPlanted   = "Seed planted"
	MsgHarvested = "Plant harvested"
	MsgDestroyed = "Withered plant cleared"
	MsgWatered   = "Plant watered"
	MsgSaved     = "Garden saved"
)

// Log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgCommandReceived   = "Grid command received"
	LogMsgCommandRejected   = "Grid command rejected"
	LogMsgCommandSucceeded  = "Grid command succeeded"
	LogMsgDispatchFailed    = "Failed to reach update loop"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgMissingQueryParam = "Missing query parameter"
	LogMsgInvalidQueryParam = "Invalid query parameter"
	LogMsgJournalReadFailed = "Failed to read event journal"
	LogMsgSaveFailed        = "Manual save failed"
)

// Log field keys
const (
	LogFieldAction   = "action"
	LogFieldCommand  = "command"
	LogFieldPosition = "position"
	LogFieldParam    = "param"
	LogFieldError    = "error"
)

// Health statuses
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)

// Query parameter names
const (
	QueryParamX      = "x"
	QueryParamY      = "y"
	QueryParamRadius = "radius"
	QueryParamLimit  = "limit"
	QueryParamTypes  = "types"
)

// HeaderRetryAfter tells clients when a cooldown ends
const HeaderRetryAfter = "Retry-After"
