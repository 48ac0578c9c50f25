package eventlog

import "time"

// Journal defaults
const (
	DefaultCapacity        = 512
	DefaultRetention       = 30 * time.Minute
	DefaultCleanupInterval = 5 * time.Minute
	DefaultQueryLimit      = 50
	MaxQueryLimit          = DefaultCapacity
)

// Log messages - service events
const (
	LogMsgEventSkipped   = "Event type not journaled, skipping"
	LogMsgFailedToLog    = "Failed to journal event"
	LogMsgEventLogged    = "Event journaled"
	LogMsgJournalEvicted = "Journal full, evicted oldest entry"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event journal cleanup job"
	LogMsgCleanupJobFailed    = "Event journal cleanup failed"
	LogMsgCleanupJobCompleted = "Event journal cleanup completed"
)

// Log field keys - structured logging fields
const (
	LogFieldType         = "type"
	LogFieldID           = "id"
	LogFieldError        = "error"
	LogFieldRetention    = "retention"
	LogFieldDuration     = "duration"
	LogFieldDeletedCount = "deletedCount"
)
