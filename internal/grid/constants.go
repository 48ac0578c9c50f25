package grid

// Log messages
const (
	LogMsgGridCreated       = "Grid created"
	LogMsgCommandRejected   = "Grid command rejected"
	LogMsgPlanted           = "Seed planted"
	LogMsgHarvested         = "Plant harvested"
	LogMsgDestroyed         = "Withered plant destroyed"
	LogMsgPublishFailed     = "Failed to publish grid event"
	LogMsgRemoveFailed      = "Plant removal transition failed"
	LogMsgGridDisposed      = "Grid disposed"
	LogMsgInvalidDimensions = "Invalid grid dimensions"
)

// Log field keys
const (
	LogFieldCommand    = "command"
	LogFieldPosition   = "position"
	LogFieldReason     = "reason"
	LogFieldPlantID    = "plant_id"
	LogFieldDefinition = "definition"
	LogFieldRarity     = "rarity"
	LogFieldWidth      = "width"
	LogFieldHeight     = "height"
	LogFieldEventType  = "event_type"
	LogFieldError      = "error"
	LogFieldReleased   = "released"
)

// Error formats
const (
	ErrFmtInvalidDimensions = "grid dimensions %dx%d: %w"
	ErrFmtPosition          = "%w: %s"
)

// Rejection reasons reported to the metrics recorder
const (
	ReasonInvalidPosition = "invalid_position"
	ReasonOccupied        = "occupied"
	ReasonEmpty           = "empty"
	ReasonSoil            = "soil_unsuitable"
	ReasonNotHarvestable  = "not_harvestable"
	ReasonNotWithered     = "not_withered"
	ReasonNotWaiting      = "not_waiting"
	ReasonCooldown        = "cooldown"
	ReasonNoDefinitions   = "no_definitions"
	ReasonDisposed        = "disposed"
	ReasonOther           = "other"
)
